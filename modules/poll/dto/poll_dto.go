package dto

import "metra-api/modules/poll/entity"

type CastVoteRequest struct {
	Dimension string `json:"dimension" validate:"required,oneof=time site"`
	OptionID  string `json:"optionId" validate:"required"`
}

// TallyResponse is the aggregated state of an event's poll.
type TallyResponse struct {
	Time       []entity.OptionTally `json:"time"`
	Site       []entity.OptionTally `json:"site"`
	VoterCount int                  `json:"voter_count"`
}
