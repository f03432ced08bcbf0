package data

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a map-backed implementation of the repository surface. It
// backs tests and DB-less runs. Access is serialized by a single RWMutex and
// rows are copied on the way in and out, so it is safe under the HTTP
// server's concurrent handlers and callers may mutate results freely.
type MemoryStore struct {
	state *memoryState
}

type memoryState struct {
	mu           sync.RWMutex
	contents     map[int64]*Content
	links        map[int64]*SiteLink
	jobs         map[int64]*Job
	applications map[int64]*JobApplication
	news         map[int64]*NewsItem
	sites        map[string]*Site
	users        map[int64]*User
	activities   []*ActivityLog
	settings     map[string]*Setting
	nextID       int64
}

// NewMemoryStore creates an empty store seeded with the three brand rows.
func NewMemoryStore() *MemoryStore {
	s := &memoryState{
		contents:     make(map[int64]*Content),
		links:        make(map[int64]*SiteLink),
		jobs:         make(map[int64]*Job),
		applications: make(map[int64]*JobApplication),
		news:         make(map[int64]*NewsItem),
		sites:        make(map[string]*Site),
		users:        make(map[int64]*User),
		settings:     make(map[string]*Setting),
	}
	now := time.Now().UTC()
	names := map[string]string{
		SiteTrustness: "Trustness",
		SiteNess:      "Ness",
		SiteForense:   "Forense",
	}
	for _, code := range SiteCodes {
		s.nextID++
		s.sites[code] = &Site{
			ID:        s.nextID,
			Code:      code,
			Name:      names[code],
			Domain:    code + ".com.br",
			Metadata:  JSONMap{},
			Social:    JSONMap{},
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return &MemoryStore{state: s}
}

func (s *memoryState) id() int64 {
	s.nextID++
	return s.nextID
}

func settingKey(key, language string) string {
	return key + "\x00" + language
}

// Clone helpers detach rows from the shared state. Without them a caller
// holding a returned pointer would mutate store internals outside the lock.

func cloneJSONMap(m JSONMap) JSONMap {
	if m == nil {
		return nil
	}
	out := make(JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStringList(l StringList) StringList {
	if l == nil {
		return nil
	}
	out := make(StringList, len(l))
	copy(out, l)
	return out
}

func cloneStrPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneContent(c *Content) *Content {
	cp := *c
	cp.Metadata = cloneJSONMap(c.Metadata)
	return &cp
}

func cloneLink(l *SiteLink) *SiteLink {
	cp := *l
	return &cp
}

func cloneJob(j *Job) *Job {
	cp := *j
	cp.Requirements = cloneStringList(j.Requirements)
	cp.Benefits = cloneStringList(j.Benefits)
	cp.Slug = cloneStrPtr(j.Slug)
	cp.SiteCode = cloneStrPtr(j.SiteCode)
	return &cp
}

func cloneApplication(a *JobApplication) *JobApplication {
	cp := *a
	cp.Phone = cloneStrPtr(a.Phone)
	cp.ResumeURL = cloneStrPtr(a.ResumeURL)
	return &cp
}

func cloneNewsItem(n *NewsItem) *NewsItem {
	cp := *n
	cp.Slug = cloneStrPtr(n.Slug)
	cp.SiteCode = cloneStrPtr(n.SiteCode)
	return &cp
}

func cloneSite(s *Site) *Site {
	cp := *s
	cp.Metadata = cloneJSONMap(s.Metadata)
	cp.Social = cloneJSONMap(s.Social)
	cp.ContactEmail = cloneStrPtr(s.ContactEmail)
	cp.ContactPhone = cloneStrPtr(s.ContactPhone)
	cp.Address = cloneStrPtr(s.Address)
	return &cp
}

func cloneUser(u *User) *User {
	cp := *u
	return &cp
}

func cloneActivity(e *ActivityLog) *ActivityLog {
	cp := *e
	cp.Details = cloneJSONMap(e.Details)
	return &cp
}

func cloneSetting(s *Setting) *Setting {
	cp := *s
	return &cp
}

// hasLink reports whether an entity is linked to a brand. Callers must hold
// the lock.
func (s *memoryState) hasLink(entityID int64, entityType, siteCode string) bool {
	for _, l := range s.links {
		if l.EntityID == entityID && l.EntityType == entityType && l.SiteCode == siteCode {
			return true
		}
	}
	return false
}

// Contents returns the content repository view of the store.
func (m *MemoryStore) Contents() *MemoryContentRepository {
	return &MemoryContentRepository{state: m.state}
}

// Links returns the site-link repository view of the store.
func (m *MemoryStore) Links() *MemorySiteLinkRepository {
	return &MemorySiteLinkRepository{state: m.state}
}

// Jobs returns the job repository view of the store.
func (m *MemoryStore) Jobs() *MemoryJobRepository {
	return &MemoryJobRepository{state: m.state}
}

// News returns the news repository view of the store.
func (m *MemoryStore) News() *MemoryNewsRepository {
	return &MemoryNewsRepository{state: m.state}
}

// Sites returns the site repository view of the store.
func (m *MemoryStore) Sites() *MemorySiteRepository {
	return &MemorySiteRepository{state: m.state}
}

// Users returns the user repository view of the store.
func (m *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{state: m.state}
}

// Activities returns the activity repository view of the store.
func (m *MemoryStore) Activities() *MemoryActivityRepository {
	return &MemoryActivityRepository{state: m.state}
}

// Settings returns the setting repository view of the store.
func (m *MemoryStore) Settings() *MemorySettingRepository {
	return &MemorySettingRepository{state: m.state}
}

// MemoryContentRepository implements content storage over the shared state.
type MemoryContentRepository struct {
	state *memoryState
}

func (r *MemoryContentRepository) GetByPage(ctx context.Context, pageID, language string) (*Content, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	var best *Content
	for _, c := range r.state.contents {
		if c.PageID == pageID && c.Language == language {
			if best == nil || c.ID < best.ID {
				best = c
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("content %q (%s): %w", pageID, language, ErrNotFound)
	}
	return cloneContent(best), nil
}

func (r *MemoryContentRepository) GetByPageAndSite(ctx context.Context, pageID, language, siteCode string) (*Content, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	var best *Content
	for _, c := range r.state.contents {
		if c.PageID == pageID && c.Language == language && r.state.hasLink(c.ID, EntityContent, siteCode) {
			if best == nil || c.ID < best.ID {
				best = c
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("content %q (%s) for site %q: %w", pageID, language, siteCode, ErrNotFound)
	}
	return cloneContent(best), nil
}

func (r *MemoryContentRepository) GetByID(ctx context.Context, id int64) (*Content, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	c, ok := r.state.contents[id]
	if !ok {
		return nil, fmt.Errorf("content %d: %w", id, ErrNotFound)
	}
	return cloneContent(c), nil
}

func (r *MemoryContentRepository) Create(ctx context.Context, content *Content, siteCode string) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	now := time.Now().UTC()
	content.ID = r.state.id()
	content.CreatedAt = now
	content.UpdatedAt = now
	r.state.contents[content.ID] = cloneContent(content)
	if siteCode != "" {
		link := &SiteLink{ID: r.state.id(), EntityID: content.ID, EntityType: EntityContent, SiteCode: siteCode}
		r.state.links[link.ID] = link
	}
	return content.ID, nil
}

func (r *MemoryContentRepository) Update(ctx context.Context, content *Content) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.contents[content.ID]; !ok {
		return fmt.Errorf("content %d: %w", content.ID, ErrNotFound)
	}
	content.UpdatedAt = time.Now().UTC()
	r.state.contents[content.ID] = cloneContent(content)
	return nil
}

func (r *MemoryContentRepository) Delete(ctx context.Context, id int64) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.contents[id]; !ok {
		return fmt.Errorf("content %d: %w", id, ErrNotFound)
	}
	delete(r.state.contents, id)
	for lid, l := range r.state.links {
		if l.EntityID == id && l.EntityType == EntityContent {
			delete(r.state.links, lid)
		}
	}
	return nil
}

func (r *MemoryContentRepository) Count(ctx context.Context, language, siteCode string) (int, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	count := 0
	for _, c := range r.state.contents {
		if c.Language != language {
			continue
		}
		if siteCode != "" && !r.state.hasLink(c.ID, EntityContent, siteCode) {
			continue
		}
		count++
	}
	return count, nil
}

// MemorySiteLinkRepository implements site-link storage over the shared state.
type MemorySiteLinkRepository struct {
	state *memoryState
}

func (r *MemorySiteLinkRepository) Create(ctx context.Context, entityID int64, entityType, siteCode string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.hasLink(entityID, entityType, siteCode) {
		return nil
	}
	link := &SiteLink{ID: r.state.id(), EntityID: entityID, EntityType: entityType, SiteCode: siteCode}
	r.state.links[link.ID] = link
	return nil
}

func (r *MemorySiteLinkRepository) Delete(ctx context.Context, entityID int64, entityType, siteCode string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for lid, l := range r.state.links {
		if l.EntityID == entityID && l.EntityType == entityType && l.SiteCode == siteCode {
			delete(r.state.links, lid)
		}
	}
	return nil
}

func (r *MemorySiteLinkRepository) Exists(ctx context.Context, entityID int64, entityType, siteCode string) (bool, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return r.state.hasLink(entityID, entityType, siteCode), nil
}

func (r *MemorySiteLinkRepository) ListForEntity(ctx context.Context, entityID int64, entityType string) ([]*SiteLink, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	var links []*SiteLink
	for _, l := range r.state.links {
		if l.EntityID == entityID && l.EntityType == entityType {
			links = append(links, cloneLink(l))
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })
	return links, nil
}

// MemoryJobRepository implements job storage over the shared state.
type MemoryJobRepository struct {
	state *memoryState
}

func (r *MemoryJobRepository) list(language, siteCode string, activeOnly bool, limit int) []*Job {
	var jobs []*Job
	for _, j := range r.state.jobs {
		if j.Language != language {
			continue
		}
		if activeOnly && !j.Active {
			continue
		}
		if siteCode != "" && !r.state.hasLink(j.ID, EntityJob, siteCode) {
			continue
		}
		jobs = append(jobs, cloneJob(j))
	}
	sort.Slice(jobs, func(i, k int) bool {
		if jobs[i].CreatedAt.Equal(jobs[k].CreatedAt) {
			return jobs[i].ID > jobs[k].ID
		}
		return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs
}

func (r *MemoryJobRepository) List(ctx context.Context, language, siteCode string) ([]*Job, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return r.list(language, siteCode, false, 0), nil
}

func (r *MemoryJobRepository) Featured(ctx context.Context, language, siteCode string) ([]*Job, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return r.list(language, siteCode, true, 4), nil
}

func (r *MemoryJobRepository) GetByID(ctx context.Context, id int64) (*Job, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	j, ok := r.state.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	return cloneJob(j), nil
}

func (r *MemoryJobRepository) Create(ctx context.Context, job *Job) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	now := time.Now().UTC()
	job.ID = r.state.id()
	job.CreatedAt = now
	job.UpdatedAt = now
	r.state.jobs[job.ID] = cloneJob(job)
	return job.ID, nil
}

func (r *MemoryJobRepository) Update(ctx context.Context, job *Job) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.jobs[job.ID]; !ok {
		return fmt.Errorf("job %d: %w", job.ID, ErrNotFound)
	}
	job.UpdatedAt = time.Now().UTC()
	r.state.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *MemoryJobRepository) Delete(ctx context.Context, id int64) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.jobs[id]; !ok {
		return fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	delete(r.state.jobs, id)
	for lid, l := range r.state.links {
		if l.EntityID == id && l.EntityType == EntityJob {
			delete(r.state.links, lid)
		}
	}
	return nil
}

func (r *MemoryJobRepository) Count(ctx context.Context, language, siteCode string) (int, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return len(r.list(language, siteCode, false, 0)), nil
}

func (r *MemoryJobRepository) CreateApplication(ctx context.Context, app *JobApplication) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	app.ID = r.state.id()
	app.AppliedAt = time.Now().UTC()
	r.state.applications[app.ID] = cloneApplication(app)
	if job, ok := r.state.jobs[app.JobID]; ok {
		job.ApplicationCount++
	}
	return app.ID, nil
}

func (r *MemoryJobRepository) ListApplications(ctx context.Context, jobID *int64) ([]*JobApplication, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	var apps []*JobApplication
	for _, a := range r.state.applications {
		if jobID != nil && a.JobID != *jobID {
			continue
		}
		apps = append(apps, cloneApplication(a))
	}
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].AppliedAt.Equal(apps[j].AppliedAt) {
			return apps[i].ID > apps[j].ID
		}
		return apps[i].AppliedAt.After(apps[j].AppliedAt)
	})
	return apps, nil
}

func (r *MemoryJobRepository) GetApplication(ctx context.Context, id int64) (*JobApplication, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	a, ok := r.state.applications[id]
	if !ok {
		return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	return cloneApplication(a), nil
}

func (r *MemoryJobRepository) UpdateApplicationStatus(ctx context.Context, id int64, status ApplicationStatus) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	a, ok := r.state.applications[id]
	if !ok {
		return fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	a.Status = status
	return nil
}

// MemoryNewsRepository implements news storage over the shared state.
type MemoryNewsRepository struct {
	state *memoryState
}

func (r *MemoryNewsRepository) list(language, siteCode string, limit int) []*NewsItem {
	var items []*NewsItem
	for _, n := range r.state.news {
		if n.Language != language {
			continue
		}
		if siteCode != "" && !r.state.hasLink(n.ID, EntityNews, siteCode) {
			continue
		}
		items = append(items, cloneNewsItem(n))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].PublishDate.Equal(items[j].PublishDate) {
			return items[i].ID > items[j].ID
		}
		return items[i].PublishDate.After(items[j].PublishDate)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (r *MemoryNewsRepository) List(ctx context.Context, language, siteCode string) ([]*NewsItem, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return r.list(language, siteCode, 0), nil
}

func (r *MemoryNewsRepository) Latest(ctx context.Context, language, siteCode string) ([]*NewsItem, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return r.list(language, siteCode, 3), nil
}

func (r *MemoryNewsRepository) GetByID(ctx context.Context, id int64) (*NewsItem, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	n, ok := r.state.news[id]
	if !ok {
		return nil, fmt.Errorf("news item %d: %w", id, ErrNotFound)
	}
	return cloneNewsItem(n), nil
}

func (r *MemoryNewsRepository) Create(ctx context.Context, item *NewsItem) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	now := time.Now().UTC()
	item.ID = r.state.id()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.PublishDate.IsZero() {
		item.PublishDate = now
	}
	r.state.news[item.ID] = cloneNewsItem(item)
	return item.ID, nil
}

func (r *MemoryNewsRepository) Update(ctx context.Context, item *NewsItem) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.news[item.ID]; !ok {
		return fmt.Errorf("news item %d: %w", item.ID, ErrNotFound)
	}
	item.UpdatedAt = time.Now().UTC()
	r.state.news[item.ID] = cloneNewsItem(item)
	return nil
}

func (r *MemoryNewsRepository) Delete(ctx context.Context, id int64) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.news[id]; !ok {
		return fmt.Errorf("news item %d: %w", id, ErrNotFound)
	}
	delete(r.state.news, id)
	for lid, l := range r.state.links {
		if l.EntityID == id && l.EntityType == EntityNews {
			delete(r.state.links, lid)
		}
	}
	return nil
}

func (r *MemoryNewsRepository) Count(ctx context.Context, language, siteCode string) (int, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return len(r.list(language, siteCode, 0)), nil
}

// MemorySiteRepository implements brand storage over the shared state.
type MemorySiteRepository struct {
	state *memoryState
}

func (r *MemorySiteRepository) List(ctx context.Context) ([]*Site, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	var sites []*Site
	for _, s := range r.state.sites {
		sites = append(sites, cloneSite(s))
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Code < sites[j].Code })
	return sites, nil
}

func (r *MemorySiteRepository) GetByCode(ctx context.Context, code string) (*Site, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	s, ok := r.state.sites[code]
	if !ok {
		return nil, fmt.Errorf("site %q: %w", code, ErrNotFound)
	}
	return cloneSite(s), nil
}

func (r *MemorySiteRepository) Update(ctx context.Context, site *Site) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.sites[site.Code]; !ok {
		return fmt.Errorf("site %q: %w", site.Code, ErrNotFound)
	}
	site.UpdatedAt = time.Now().UTC()
	r.state.sites[site.Code] = cloneSite(site)
	return nil
}

// MemoryUserRepository implements user storage over the shared state.
type MemoryUserRepository struct {
	state *memoryState
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	for _, u := range r.state.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *User) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	user.ID = r.state.id()
	user.CreatedAt = time.Now().UTC()
	r.state.users[user.ID] = cloneUser(user)
	return user.ID, nil
}

func (r *MemoryUserRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	u, ok := r.state.users[id]
	if !ok {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	u.IsAdmin = isAdmin
	return nil
}

// MemoryActivityRepository implements the audit trail over the shared state.
type MemoryActivityRepository struct {
	state *memoryState
}

func (r *MemoryActivityRepository) Create(ctx context.Context, entry *ActivityLog) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	entry.ID = r.state.id()
	entry.CreatedAt = time.Now().UTC()
	r.state.activities = append(r.state.activities, cloneActivity(entry))
	return nil
}

func (r *MemoryActivityRepository) Recent(ctx context.Context, limit int) ([]*ActivityLog, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	entries := make([]*ActivityLog, len(r.state.activities))
	copy(entries, r.state.activities)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]*ActivityLog, len(entries))
	for i, e := range entries {
		out[i] = cloneActivity(e)
	}
	return out, nil
}

// MemorySettingRepository implements settings storage over the shared state.
type MemorySettingRepository struct {
	state *memoryState
}

func (r *MemorySettingRepository) Get(ctx context.Context, key, language string) (*Setting, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	s, ok := r.state.settings[settingKey(key, language)]
	if !ok {
		return nil, fmt.Errorf("setting %q (%s): %w", key, language, ErrNotFound)
	}
	return cloneSetting(s), nil
}

func (r *MemorySettingRepository) List(ctx context.Context, language string) ([]*Setting, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	var settings []*Setting
	for _, s := range r.state.settings {
		if language != "" && s.Language != language {
			continue
		}
		settings = append(settings, cloneSetting(s))
	}
	sort.Slice(settings, func(i, j int) bool {
		if settings[i].Key == settings[j].Key {
			return settings[i].Language < settings[j].Language
		}
		return settings[i].Key < settings[j].Key
	})
	return settings, nil
}

func (r *MemorySettingRepository) Upsert(ctx context.Context, key, language, value string) (*Setting, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	k := settingKey(key, language)
	if s, ok := r.state.settings[k]; ok {
		s.Value = value
		s.UpdatedAt = time.Now().UTC()
		return cloneSetting(s), nil
	}
	s := &Setting{ID: r.state.id(), Key: key, Language: language, Value: value, UpdatedAt: time.Now().UTC()}
	r.state.settings[k] = s
	return cloneSetting(s), nil
}
