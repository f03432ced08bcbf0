package data

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Site codes form a closed set: the holding company and its two spin-off
// brands share this backend.
const (
	SiteTrustness = "trustness"
	SiteNess      = "ness"
	SiteForense   = "forense"
)

// SiteCodes lists every valid brand code.
var SiteCodes = []string{SiteTrustness, SiteNess, SiteForense}

// IsValidSiteCode reports whether code belongs to the fixed brand-code set.
func IsValidSiteCode(code string) bool {
	for _, c := range SiteCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Languages form a closed set as well.
var Languages = []string{"pt", "en", "es"}

// IsValidLanguage reports whether lang belongs to the fixed language set.
func IsValidLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Entity type tags used by the content_sites link table.
const (
	EntityContent     = "content"
	EntityJob         = "job"
	EntityNews        = "news"
	EntityLandingPage = "landing_page"
)

// ApplicationStatus is the lifecycle state of a job application.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusReviewing ApplicationStatus = "reviewing"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

// IsValid reports whether the status belongs to the fixed 4-value enum.
func (s ApplicationStatus) IsValid() error {
	switch s {
	case StatusPending, StatusReviewing, StatusAccepted, StatusRejected:
		return nil
	}
	return fmt.Errorf("invalid application status %q", string(s))
}

// JSONMap stores a free-form JSON object in a TEXT column.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		if len(v) == 0 {
			*m = JSONMap{}
			return nil
		}
		return json.Unmarshal(v, m)
	case string:
		if v == "" {
			*m = JSONMap{}
			return nil
		}
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("unsupported source type for JSONMap")
}

// StringList stores a JSON array of strings in a TEXT column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		if len(v) == 0 {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal(v, l)
	case string:
		if v == "" {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported source type for StringList")
}

// Site is one of the three brand tenants sharing this backend.
type Site struct {
	ID             int64     `db:"id" json:"id"`
	Code           string    `db:"code" json:"code"`
	Name           string    `db:"name" json:"name"`
	Domain         string    `db:"domain" json:"domain"`
	PrimaryColor   string    `db:"primary_color" json:"primaryColor"`
	SecondaryColor string    `db:"secondary_color" json:"secondaryColor"`
	Metadata       JSONMap   `db:"metadata" json:"metadata"`
	Social         JSONMap   `db:"social" json:"social"`
	ContactEmail   *string   `db:"contact_email" json:"contactEmail,omitempty"`
	ContactPhone   *string   `db:"contact_phone" json:"contactPhone,omitempty"`
	Address        *string   `db:"address" json:"address,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// Content is a localized page body plus its SEO fields. At most one
// brand-agnostic row exists per (page_id, language) pair; brand-specific
// variants are expressed through SiteLink rows.
type Content struct {
	ID              int64     `db:"id" json:"id"`
	PageID          string    `db:"page_id" json:"pageId"`
	Language        string    `db:"language" json:"language"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	Body            string    `db:"body" json:"body"`
	Metadata        JSONMap   `db:"metadata" json:"metadata"`
	MetaTitle       string    `db:"meta_title" json:"metaTitle"`
	MetaDescription string    `db:"meta_description" json:"metaDescription"`
	CanonicalURL    string    `db:"canonical_url" json:"canonicalUrl"`
	OGImage         string    `db:"og_image" json:"ogImage"`
	Published       bool      `db:"published" json:"published"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// SiteLink binds an entity (content, job, news or landing page) to a brand.
// The (EntityID, EntityType, SiteCode) triple is unique.
type SiteLink struct {
	ID         int64  `db:"id" json:"id"`
	EntityID   int64  `db:"entity_id" json:"entityId"`
	EntityType string `db:"entity_type" json:"entityType"`
	SiteCode   string `db:"site_code" json:"siteCode"`
}

// Job is a localized job posting.
type Job struct {
	ID               int64      `db:"id" json:"id"`
	Title            string     `db:"title" json:"title"`
	Location         string     `db:"location" json:"location"`
	LocationType     string     `db:"location_type" json:"locationType"`
	EmploymentType   string     `db:"employment_type" json:"employmentType"`
	Level            string     `db:"level" json:"level"`
	Salary           string     `db:"salary" json:"salary"`
	Summary          string     `db:"summary" json:"summary"`
	Description      string     `db:"description" json:"description"`
	Requirements     StringList `db:"requirements" json:"requirements"`
	Benefits         StringList `db:"benefits" json:"benefits"`
	Active           bool       `db:"active" json:"active"`
	Featured         bool       `db:"featured" json:"featured"`
	Language         string     `db:"language" json:"language"`
	Slug             *string    `db:"slug" json:"slug,omitempty"`
	SiteCode         *string    `db:"site_code" json:"siteCode,omitempty"`
	ApplicationCount int        `db:"application_count" json:"applicationCount"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// JobApplication is a public submission against a posting. The JobID is a
// plain numeric reference; deleting the posting leaves applications in place.
type JobApplication struct {
	ID          int64             `db:"id" json:"id"`
	JobID       int64             `db:"job_id" json:"jobId"`
	Name        string            `db:"name" json:"name"`
	Email       string            `db:"email" json:"email"`
	Phone       *string           `db:"phone" json:"phone,omitempty"`
	CoverLetter string            `db:"cover_letter" json:"coverLetter"`
	ResumeURL   *string           `db:"resume_url" json:"resumeUrl,omitempty"`
	Status      ApplicationStatus `db:"status" json:"status"`
	AppliedAt   time.Time         `db:"applied_at" json:"appliedAt"`
}

// NewsItem is a localized news article.
type NewsItem struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Summary     string    `db:"summary" json:"summary"`
	Body        string    `db:"body" json:"body"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	PublishDate time.Time `db:"publish_date" json:"publishDate"`
	Category    string    `db:"category" json:"category"`
	Featured    bool      `db:"featured" json:"featured"`
	Language    string    `db:"language" json:"language"`
	Slug        *string   `db:"slug" json:"slug,omitempty"`
	SiteCode    *string   `db:"site_code" json:"siteCode,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ActivityLog is an append-only audit record of an admin mutation.
type ActivityLog struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"userId"`
	Action     string    `db:"action" json:"action"`
	EntityType string    `db:"entity_type" json:"entityType"`
	EntityID   int64     `db:"entity_id" json:"entityId"`
	Details    JSONMap   `db:"details" json:"details"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Setting is a key+language scoped string value for translatable UI strings.
type Setting struct {
	ID        int64     `db:"id" json:"id"`
	Key       string    `db:"setting_key" json:"key"`
	Language  string    `db:"language" json:"language"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// User is an administrative account.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
