package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
	"hugox-backend/middleware"
	"hugox-backend/models"
	"hugox-backend/query"
)

// statusRequest is the body of every PUT /:id/status endpoint.
type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// fail hands err to the Errors middleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

func ok(c *gin.Context, message string, data gin.H) {
	c.JSON(http.StatusOK, models.Envelope{Success: true, Message: message, Data: data})
}

func created(c *gin.Context, message string, data gin.H) {
	c.JSON(http.StatusCreated, models.Envelope{Success: true, Message: message, Data: data})
}

func paged(c *gin.Context, data gin.H, q *query.Query, total int64) {
	c.JSON(http.StatusOK, models.Envelope{
		Success:    true,
		Data:       data,
		Pagination: models.NewPagination(q.Page, q.Limit, total),
	})
}

// paramID parses the path parameter name as an ObjectID.
func paramID(c *gin.Context, name, entity string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, apperror.Validation(name, "Invalid "+entity+" ID")
	}
	return id, nil
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.FromBinding(err)
	}
	return nil
}

// limitParam reads the "limit" query parameter of the unpaged widget
// endpoints.
func limitParam(c *gin.Context, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > query.MaxLimit {
		return 0, apperror.Validation("limit", "limit must be between 1 and 100")
	}
	return n, nil
}

// mustUser returns the user attached by the auth gate.
func mustUser(c *gin.Context) (*models.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperror.Unauthenticated("Access denied. No token provided.")
	}
	return u, nil
}
