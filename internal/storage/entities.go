package storage

// Well-known keys of the persisted key space.
const (
	KeyTasks            = "kario-tasks"
	KeyDeletedTasks     = "kario-deleted-tasks"
	KeyCustomPriorities = "kario-custom-priorities"
	KeyLabels           = "kario-labels"
	KeyCustomReminders  = "kario-custom-reminders"
	KeyFilterSettings   = "kario-filter-settings"
	KeyFilterValues     = "kario-filter-values"
	KeySortSettings     = "kario-sort-settings"

	ChatKeyPrefix = "kario-chat-"
)

// ChatKey is the key holding the transcript of chat session id.
func ChatKey(id string) string {
	return ChatKeyPrefix + id
}
