package tasks

import (
	"encoding/json"
	"fmt"
)

type DeleteURLsPayload struct {
	URLIDs      []int64 `json:"url_ids"`
	ApplyDelete bool    `json:"apply_delete"`
}

type DeletePayload struct {
	User        string `json:"user"`
	ApplyDelete bool   `json:"apply_delete"`
}

type UploadPayload struct {
	User        string `json:"user"`
	Payload     []byte `json:"payload"`
	ApplyUpload bool   `json:"apply_upload"`
}

type ErrorPayload struct {
	Value string `json:"value"`
}

// The apply flags are true unless the producer explicitly sent false:
// json.Unmarshal leaves absent fields untouched.

func decodeDeleteURLs(data []byte) (DeleteURLsPayload, error) {
	p := DeleteURLsPayload{ApplyDelete: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("unmarshal %s payload: %w", TaskDeleteURLs, err)
	}
	return p, nil
}

func decodeDelete(data []byte) (DeletePayload, error) {
	p := DeletePayload{ApplyDelete: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("unmarshal %s payload: %w", TaskDelete, err)
	}
	return p, nil
}

func decodeUpload(data []byte) (UploadPayload, error) {
	p := UploadPayload{ApplyUpload: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("unmarshal %s payload: %w", TaskUpload, err)
	}
	return p, nil
}

func decodeError(data []byte) (ErrorPayload, error) {
	var p ErrorPayload
	if len(data) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("unmarshal %s payload: %w", TaskError, err)
	}
	return p, nil
}
