package queryparser

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filter struct {
	Tasks   []string `query:"task"`
	IDs     []int64  `query:"id"`
	Failing bool     `query:"failing"`
	Limit   int      `query:"limit"`
	Queue   string   `query:"queue"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    filter
		wantErr bool
	}{
		{name: "empty", query: "", want: filter{}},
		{
			name:  "scalars",
			query: "failing=true&limit=10&queue=celery_delete",
			want:  filter{Failing: true, Limit: 10, Queue: "celery_delete"},
		},
		{
			name:  "repeated and comma separated values",
			query: "task=upload,delete&task=dummy&id=1,2&id=3",
			want:  filter{Tasks: []string{"upload", "delete", "dummy"}, IDs: []int64{1, 2, 3}},
		},
		{name: "blank items are skipped", query: "task=upload,,&task=", want: filter{Tasks: []string{"upload"}}},
		{name: "invalid bool", query: "failing=maybe", wantErr: true},
		{name: "invalid integer in slice", query: "id=1,x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			var got filter
			err = Parse(values, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_RequiresStructPointer(t *testing.T) {
	assert.Error(t, Parse(url.Values{}, filter{}))

	n := 1
	assert.Error(t, Parse(url.Values{}, &n))
}
