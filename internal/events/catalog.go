package events

// Entity types
const (
	EntityCatalog     = "catalog"
	EntityShow        = "show"
	EntitySettings    = "settings"
	EntityAnalysisJob = "analysis_job"
)

// Event type constants
const (
	EventReconcileCompleted  = "reconcile.completed"
	EventImportModeChanged   = "import_mode.changed"
	EventShowsDeleted        = "shows.deleted"
	EventAnalysisScheduled   = "analysis.scheduled"
	EventAnalysisJobFinished = "analysis.job.finished"
)

// Reconcile triggers
const (
	TriggerManual = "manual"
	TriggerAuto   = "auto"
	TriggerImport = "import"
)

// ReconcileCompleted is emitted after a reconciliation run finishes without
// a remote failure.
type ReconcileCompleted struct {
	BaseEvent
	Trigger          string `json:"trigger"`
	ShowsProcessed   int    `json:"shows_processed"`
	ShowsImported    int    `json:"shows_imported"`
	EpisodesImported int    `json:"episodes_imported"`
}

// NewReconcileCompleted builds a ReconcileCompleted event.
func NewReconcileCompleted(trigger string, processed, imported, episodes int) *ReconcileCompleted {
	return &ReconcileCompleted{
		BaseEvent:        NewBaseEvent(EventReconcileCompleted, EntityCatalog, 0),
		Trigger:          trigger,
		ShowsProcessed:   processed,
		ShowsImported:    imported,
		EpisodesImported: episodes,
	}
}

// ImportModeChanged is emitted when the persisted import mode changes.
type ImportModeChanged struct {
	BaseEvent
	Mode     string `json:"mode"`
	Previous string `json:"previous"`
}

// NewImportModeChanged builds an ImportModeChanged event.
func NewImportModeChanged(mode, previous string) *ImportModeChanged {
	return &ImportModeChanged{
		BaseEvent: NewBaseEvent(EventImportModeChanged, EntitySettings, 0),
		Mode:      mode,
		Previous:  previous,
	}
}

// ShowsDeleted is emitted after a bulk delete commits.
type ShowsDeleted struct {
	BaseEvent
	ShowIDs []int64 `json:"show_ids"`
	Deleted int64   `json:"deleted"`
}

// NewShowsDeleted builds a ShowsDeleted event.
func NewShowsDeleted(ids []int64, deleted int64) *ShowsDeleted {
	return &ShowsDeleted{
		BaseEvent: NewBaseEvent(EventShowsDeleted, EntityShow, 0),
		ShowIDs:   ids,
		Deleted:   deleted,
	}
}

// AnalysisScheduled is emitted when analysis jobs are created for a show.
type AnalysisScheduled struct {
	BaseEvent
	ShowID    int64    `json:"show_id"`
	ShowTitle string   `json:"show_title"`
	JobIDs    []string `json:"job_ids"`
}

// NewAnalysisScheduled builds an AnalysisScheduled event.
func NewAnalysisScheduled(showID int64, showTitle string, jobIDs []string) *AnalysisScheduled {
	return &AnalysisScheduled{
		BaseEvent: NewBaseEvent(EventAnalysisScheduled, EntityShow, showID),
		ShowID:    showID,
		ShowTitle: showTitle,
		JobIDs:    jobIDs,
	}
}

// AnalysisJobFinished is emitted when a job reaches completed or failed.
type AnalysisJobFinished struct {
	BaseEvent
	JobID    string `json:"job_id"`
	FilePath string `json:"file_path"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// NewAnalysisJobFinished builds an AnalysisJobFinished event. The entity id
// is the show the job belongs to.
func NewAnalysisJobFinished(showID int64, jobID, filePath, status, errMsg string) *AnalysisJobFinished {
	return &AnalysisJobFinished{
		BaseEvent: NewBaseEvent(EventAnalysisJobFinished, EntityAnalysisJob, showID),
		JobID:     jobID,
		FilePath:  filePath,
		Status:    status,
		Error:     errMsg,
	}
}
