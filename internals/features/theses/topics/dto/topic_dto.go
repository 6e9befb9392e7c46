package dto

import (
	"strings"

	"skripsiku_backend/internals/features/theses/topics/model"
	helper "skripsiku_backend/internals/helpers"
)

type CreateTopicRequest struct {
	TopicName        string `json:"topic_name" validate:"required,min=3,max=150"`
	TopicDescription string `json:"topic_description"`
	TopicIsActive    *bool  `json:"topic_is_active"`
}

func (r *CreateTopicRequest) ToModel() *model.TopicModel {
	active := true
	if r.TopicIsActive != nil {
		active = *r.TopicIsActive
	}
	return &model.TopicModel{
		TopicName:        helper.NormalizeName(r.TopicName),
		TopicDescription: strings.TrimSpace(r.TopicDescription),
		TopicIsActive:    active,
	}
}

type UpdateTopicRequest struct {
	TopicName        *string `json:"topic_name" validate:"omitempty,min=3,max=150"`
	TopicDescription *string `json:"topic_description"`
}

func (r *UpdateTopicRequest) Apply(m *model.TopicModel) {
	if r.TopicName != nil {
		m.TopicName = helper.NormalizeName(*r.TopicName)
	}
	if r.TopicDescription != nil {
		m.TopicDescription = strings.TrimSpace(*r.TopicDescription)
	}
}

type ListTopicQuery struct {
	Q       string `query:"q"`
	Active  *bool  `query:"active"`
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
}
