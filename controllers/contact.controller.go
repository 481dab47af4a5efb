package controllers

import (
	"github.com/gin-gonic/gin"

	"hugox-backend/models"
)

// SubmitContact menangani formulir kontak publik.
func (ctrl *Controller) SubmitContact(c *gin.Context) {
	ctrl.submitContact(c, false)
}

// SubmitAgentContact menangani pendaftaran calon agen.
func (ctrl *Controller) SubmitAgentContact(c *gin.Context) {
	ctrl.submitContact(c, true)
}

func (ctrl *Controller) submitContact(c *gin.Context, agent bool) {
	var in models.ContactInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	// visitors only fill the form fields
	in.Status, in.Priority, in.AssignedTo, in.Notes, in.Source = nil, nil, nil, nil, nil
	if _, err := in.Validate(true); err != nil {
		fail(c, err)
		return
	}
	contact := models.NewContact(&in, ctrl.now())
	message := "Contact form submitted successfully"
	if agent {
		contact.Subject = models.AgentSubjectPrefix + contact.Subject
		contact.Priority = models.PriorityHigh
		message = "Agent contact form submitted successfully"
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.Contacts.Create(ctx, contact); err != nil {
		fail(c, err)
		return
	}
	created(c, message, gin.H{"contact": contact})
}
