package models

import (
	"fmt"
	"strings"

	"hugox-backend/apperror"
)

// ParseEnum accepts v only if it is one of allowed; the error names field.
func ParseEnum[T ~string](field, v string, allowed ...T) (T, error) {
	for _, a := range allowed {
		if string(a) == v {
			return a, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	var zero T
	return zero, apperror.Validation(field, fmt.Sprintf("%s must be one of: %s", field, strings.Join(names, ", ")))
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var Roles = []Role{RoleUser, RoleAdmin}

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
	ProductDraft    ProductStatus = "draft"
)

var ProductStatuses = []ProductStatus{ProductActive, ProductInactive, ProductDraft}

type CategoryStatus string

const (
	CategoryActive   CategoryStatus = "active"
	CategoryInactive CategoryStatus = "inactive"
)

var CategoryStatuses = []CategoryStatus{CategoryActive, CategoryInactive}

type NewsStatus string

const (
	NewsDraft     NewsStatus = "draft"
	NewsPublished NewsStatus = "published"
	NewsArchived  NewsStatus = "archived"
)

var NewsStatuses = []NewsStatus{NewsDraft, NewsPublished, NewsArchived}

// NewsCategory is the closed set of editorial sections.
type NewsCategory string

const (
	NewsTechnology NewsCategory = "Công nghệ"
	NewsProduct    NewsCategory = "Sản phẩm"
	NewsPromotion  NewsCategory = "Khuyến mãi"
	NewsGeneral    NewsCategory = "Tin tức"
	NewsOther      NewsCategory = "Khác"
)

var NewsCategories = []NewsCategory{NewsTechnology, NewsProduct, NewsPromotion, NewsGeneral, NewsOther}

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

var ReviewStatuses = []ReviewStatus{ReviewPending, ReviewApproved, ReviewRejected}

type ContactStatus string

const (
	ContactNew       ContactStatus = "new"
	ContactContacted ContactStatus = "contacted"
	ContactResolved  ContactStatus = "resolved"
	ContactClosed    ContactStatus = "closed"
)

var ContactStatuses = []ContactStatus{ContactNew, ContactContacted, ContactResolved, ContactClosed}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

type ContactSource string

const (
	SourceWebsite ContactSource = "website"
	SourcePhone   ContactSource = "phone"
	SourceEmail   ContactSource = "email"
	SourceSocial  ContactSource = "social"
)

var ContactSources = []ContactSource{SourceWebsite, SourcePhone, SourceEmail, SourceSocial}

// Strings converts an enum set for use in query specs.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
