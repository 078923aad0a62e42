package tasks

const (
	TaskDeleteURLs = "delete_urls"
	TaskDelete     = "delete"
	TaskUpload     = "upload"
	TaskDummy      = "dummy"
	TaskError      = "error"
)

const (
	QueueDefault = "celery_default"
	QueueDelete  = "celery_delete"
	QueueUpload  = "celery_upload"
)

// DummyCounterKey is the cache key the dummy task increments.
const DummyCounterKey = "foo"
