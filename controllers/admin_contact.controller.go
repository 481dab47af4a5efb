package controllers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
	"hugox-backend/logger"
	"hugox-backend/models"
	"hugox-backend/query"
)

// AdminGetContacts menangani daftar kontak masuk.
func (ctrl *Controller) AdminGetContacts(c *gin.Context) {
	q, err := query.AdminContacts.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	contacts, total, err := ctrl.Contacts.List(ctx, q)
	if err != nil {
		fail(c, err)
		return
	}
	if err := ctrl.Contacts.FetchWithRefs(ctx, contacts, models.RefAssignedTo); err != nil {
		fail(c, err)
		return
	}
	paged(c, gin.H{"contacts": contacts}, q, total)
}

// AdminGetContact menangani satu kontak.
func (ctrl *Controller) AdminGetContact(c *gin.Context) {
	id, err := paramID(c, "id", "contact")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	contact, err := ctrl.Contacts.FindByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	ctrl.respondContact(ctx, c, "", contact)
}

// UpdateContactStatus menangani status, catatan dan penanggung jawab kontak.
// assignedTo kosong melepas penugasan.
func (ctrl *Controller) UpdateContactStatus(c *gin.Context) {
	id, err := paramID(c, "id", "contact")
	if err != nil {
		fail(c, err)
		return
	}
	var req models.ContactStatusUpdate
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	status, err := models.ParseEnum("status", string(req.Status), models.ContactStatuses...)
	if err != nil {
		fail(c, err)
		return
	}
	set := map[string]interface{}{"status": status}
	if req.Notes != nil {
		set["notes"] = strings.TrimSpace(*req.Notes)
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			set["assignedTo"] = nil
		} else {
			assignee, err := primitive.ObjectIDFromHex(*req.AssignedTo)
			if err != nil {
				fail(c, apperror.Validation("assignedTo", "Invalid assignedTo ID"))
				return
			}
			set["assignedTo"] = assignee
		}
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	contact, err := ctrl.Contacts.Update(ctx, id, set)
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "status", "contact", id.Hex())
	ctrl.respondContact(ctx, c, "Contact status updated successfully", contact)
}

// AddContactNotes menangani penambahan catatan internal oleh admin.
func (ctrl *Controller) AddContactNotes(c *gin.Context) {
	id, err := paramID(c, "id", "contact")
	if err != nil {
		fail(c, err)
		return
	}
	user, err := mustUser(c)
	if err != nil {
		fail(c, err)
		return
	}
	var in models.NoteInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		fail(c, apperror.Validation("content", "Notes content is required"))
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	contact, err := ctrl.Contacts.AddNote(ctx, id, models.InternalNote{
		Content:   content,
		AuthorID:  user.ID,
		CreatedAt: ctrl.now(),
	})
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "note", "contact", id.Hex())
	ctrl.respondContact(ctx, c, "Internal notes added successfully", contact)
}

// DeleteContact menangani penghapusan kontak.
func (ctrl *Controller) DeleteContact(c *gin.Context) {
	id, err := paramID(c, "id", "contact")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.Contacts.Delete(ctx, id); err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "delete", "contact", id.Hex())
	ok(c, "Contact deleted successfully", nil)
}

func (ctrl *Controller) respondContact(ctx context.Context, c *gin.Context, message string, contact *models.Contact) {
	items := []models.Contact{*contact}
	if err := ctrl.Contacts.FetchWithRefs(ctx, items, models.RefAssignedTo); err != nil {
		fail(c, err)
		return
	}
	ok(c, message, gin.H{"contact": items[0]})
}
