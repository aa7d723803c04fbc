package dto

import "metra-api/modules/collab/entity"

type DecideCollabRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

// CreateCollabResponse wraps the pending request and reports whether it was
// freshly created or already existed.
type CreateCollabResponse struct {
	Request *entity.CollabRequest `json:"request"`
	Existed bool                  `json:"existed"`
}
