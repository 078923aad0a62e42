package insights

import (
	"net/url"
	"slices"

	"github.com/IsaacDSC/miracle/pkg/queryparser"
)

// Filter narrows the insights listing: ?task=upload,delete&queue=celery_delete&failing=true
type Filter struct {
	Tasks   []string `query:"task"`
	Queues  []string `query:"queue"`
	Failing bool     `query:"failing"`
}

func ParseFilter(values url.Values) (Filter, error) {
	var f Filter
	err := queryparser.Parse(values, &f)
	return f, err
}

func (f Filter) Match(m TaskMetric) bool {
	if len(f.Tasks) > 0 && !slices.Contains(f.Tasks, m.TaskName) {
		return false
	}
	if len(f.Queues) > 0 && !slices.Contains(f.Queues, m.Queue) {
		return false
	}
	if f.Failing && m.Failure == 0 {
		return false
	}
	return true
}

func (f Filter) Apply(metrics []TaskMetric) []TaskMetric {
	out := make([]TaskMetric, 0, len(metrics))
	for _, m := range metrics {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}
