package models

import "strings"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "Pending"
	ReviewApproved ReviewStatus = "Approved"
	ReviewRejected ReviewStatus = "Rejected"
)

// ReviewAll - значение фильтра "без отбора по статусу"
const ReviewAll = "all"

var reviewHumanName = map[ReviewStatus]string{
	ReviewPending:  "На проверке",
	ReviewApproved: "Подтверждено",
	ReviewRejected: "Отклонено",
}

func (s ReviewStatus) ToHuman() string {
	if human, exist := reviewHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ReviewStatus) IsValid() bool {
	_, ok := reviewHumanName[s]
	return ok
}

// ParseReviewStatus приводит входное значение к каноническому виду (регистр не важен)
func ParseReviewStatus(value string) (ReviewStatus, bool) {
	for status := range reviewHumanName {
		if strings.EqualFold(string(status), strings.TrimSpace(value)) {
			return status, true
		}
	}
	return "", false
}

// ToStored - в БД "на проверке" хранится как NULL
func (s ReviewStatus) ToStored() *ReviewStatus {
	if s == ReviewPending || s == "" {
		return nil
	}
	value := s
	return &value
}

// FromStored - NULL и литерал "Pending" равнозначны
func FromStored(value *ReviewStatus) ReviewStatus {
	if value == nil || *value == "" {
		return ReviewPending
	}
	return *value
}
