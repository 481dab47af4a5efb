package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
)

// AgentSubjectPrefix marks dealer enquiries.
const AgentSubjectPrefix = "[Đại lý] "

var contactPhone = regexp.MustCompile(`^[0-9]{10,11}$`)

// InternalNote is an admin-only remark on a contact.
type InternalNote struct {
	Content   string             `json:"content" bson:"content"`
	AuthorID  primitive.ObjectID `json:"author" bson:"author"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Contact is a lead submitted through the site or entered by staff.
type Contact struct {
	ID            primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string              `json:"name" bson:"name"`
	Email         string              `json:"email" bson:"email"`
	Phone         string              `json:"phone" bson:"phone"`
	Subject       string              `json:"subject" bson:"subject"`
	Content       string              `json:"content" bson:"content"`
	Status        ContactStatus       `json:"status" bson:"status"`
	Priority      Priority            `json:"priority" bson:"priority"`
	AssignedToID  *primitive.ObjectID `json:"assignedToId,omitempty" bson:"assignedTo,omitempty"`
	Notes         string              `json:"notes,omitempty" bson:"notes,omitempty"`
	InternalNotes []InternalNote      `json:"internalNotes,omitempty" bson:"internalNotes,omitempty"`
	Source        ContactSource       `json:"source" bson:"source"`
	CreatedAt     time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt" bson:"updatedAt"`

	AssignedTo *Ref `json:"assignedTo,omitempty" bson:"-"`
}

// ContactInput is the public form body and the admin update body.
type ContactInput struct {
	Name       *string        `json:"name"`
	Email      *string        `json:"email"`
	Phone      *string        `json:"phone"`
	Subject    *string        `json:"subject"`
	Content    *string        `json:"content"`
	Status     *ContactStatus `json:"status"`
	Priority   *Priority      `json:"priority"`
	AssignedTo *string        `json:"assignedTo"`
	Notes      *string        `json:"notes"`
	Source     *ContactSource `json:"source"`
}

// Validate normalises the body and returns the assignee when one was given.
func (in *ContactInput) Validate(create bool) (*primitive.ObjectID, error) {
	if err := text("name", in.Name, create, 100); err != nil {
		return nil, err
	}
	if err := text("email", in.Email, create, 0); err != nil {
		return nil, err
	}
	if in.Email != nil {
		e := strings.ToLower(*in.Email)
		if !ValidEmail(e) {
			return nil, apperror.Validation("email", "Please enter a valid email")
		}
		in.Email = &e
	}
	if err := text("phone", in.Phone, create, 0); err != nil {
		return nil, err
	}
	if in.Phone != nil && !contactPhone.MatchString(*in.Phone) {
		return nil, apperror.Validation("phone", "Please enter a valid phone number")
	}
	if err := text("subject", in.Subject, create, 200); err != nil {
		return nil, err
	}
	if err := text("content", in.Content, create, 2000); err != nil {
		return nil, err
	}
	if err := text("notes", in.Notes, false, 1000); err != nil {
		return nil, err
	}
	if in.Status != nil {
		if _, err := ParseEnum("status", string(*in.Status), ContactStatuses...); err != nil {
			return nil, err
		}
	}
	if in.Priority != nil {
		if _, err := ParseEnum("priority", string(*in.Priority), Priorities...); err != nil {
			return nil, err
		}
	}
	if in.Source != nil {
		if _, err := ParseEnum("source", string(*in.Source), ContactSources...); err != nil {
			return nil, err
		}
	}
	return objectID("assignedTo", in.AssignedTo)
}

// NewContact builds a new lead from a validated public submission.
func NewContact(in *ContactInput, now time.Time) *Contact {
	c := &Contact{
		Status:    ContactNew,
		Priority:  PriorityMedium,
		Source:    SourceWebsite,
		CreatedAt: now,
		UpdatedAt: now,
	}
	setString(&c.Name, in.Name)
	setString(&c.Email, in.Email)
	setString(&c.Phone, in.Phone)
	setString(&c.Subject, in.Subject)
	setString(&c.Content, in.Content)
	if in.Priority != nil {
		c.Priority = *in.Priority
	}
	if in.Source != nil {
		c.Source = *in.Source
	}
	return c
}

// Updates returns the $set document for a validated admin update.
func (in *ContactInput) Updates(assignee *primitive.ObjectID, now time.Time) map[string]interface{} {
	set := map[string]interface{}{"updatedAt": now}
	for key, v := range map[string]*string{
		"name": in.Name, "email": in.Email, "phone": in.Phone,
		"subject": in.Subject, "content": in.Content, "notes": in.Notes,
	} {
		if v != nil {
			set[key] = *v
		}
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.Priority != nil {
		set["priority"] = *in.Priority
	}
	if in.Source != nil {
		set["source"] = *in.Source
	}
	if assignee != nil {
		set["assignedTo"] = *assignee
	}
	return set
}

// ContactStatusUpdate is the body of PUT /api/admin/contacts/:id/status.
type ContactStatusUpdate struct {
	Status     ContactStatus `json:"status" binding:"required"`
	Notes      *string       `json:"notes"`
	AssignedTo *string       `json:"assignedTo"`
}

// NoteInput is the body of POST /api/admin/contacts/:id/notes.
type NoteInput struct {
	Content string `json:"content" binding:"required,max=1000"`
}
