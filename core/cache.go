package core

// Cached read-keys. Each entity's mutating operations invalidate the keys
// declared here, synchronously after a successful mutation and never on
// failure. The cache layer itself is an external collaborator; the core only
// owns this mapping and the invalidation trigger.
const (
	CacheTemplates      = "templates"
	CacheCampaigns      = "campaigns"
	CacheEscalations    = "escalations"
	CacheQueries        = "queries"
	CacheUsers          = "users"
	CacheAnalytics      = "analytics"
	CacheGames          = "games"
	CacheUserGameStats  = "user-game-stats"
	CacheCourses        = "courses"
	CacheCategories     = "categories"
	CacheLessons        = "lessons"
	CacheLessonProgress = "lesson-progress"
	CacheAuditLogs      = "audit-logs"
	CacheRoles          = "roles"
)

// Invalidator is any cache layer that can drop cached read-keys.
type Invalidator interface {
	Invalidate(keys ...string)
}

// NopInvalidator discards invalidations. Used when no cache layer is wired.
type NopInvalidator struct{}

func (NopInvalidator) Invalidate(...string) {}
