package controllers

import (
	"github.com/gin-gonic/gin"

	"hugox-backend/apperror"
	"hugox-backend/logger"
	"hugox-backend/models"
	"hugox-backend/query"
)

// GetUsers menangani daftar pengguna dengan filter role dan isActive.
func (ctrl *Controller) GetUsers(c *gin.Context) {
	q, err := query.AdminUsers.Parse(c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	users, total, err := ctrl.Users.List(ctx, q)
	if err != nil {
		fail(c, err)
		return
	}
	paged(c, gin.H{"users": users}, q, total)
}

// GetUser menangani satu pengguna.
func (ctrl *Controller) GetUser(c *gin.Context) {
	id, err := paramID(c, "id", "user")
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := ctrl.Users.FindByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"user": user})
}

// CreateUser menangani pembuatan akun oleh admin.
func (ctrl *Controller) CreateUser(c *gin.Context) {
	var in models.UserInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	if err := in.Validate(true); err != nil {
		fail(c, err)
		return
	}
	hash, err := ctrl.hashPassword(*in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	user := &models.User{
		Name:     *in.Name,
		Email:    *in.Email,
		Password: hash,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.Users.Create(ctx, user); err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "create", "user", user.ID.Hex())
	created(c, "User created successfully", gin.H{"user": user})
}

// UpdateUser menangani perubahan akun. Admin tidak dapat menonaktifkan
// akunnya sendiri.
func (ctrl *Controller) UpdateUser(c *gin.Context) {
	id, err := paramID(c, "id", "user")
	if err != nil {
		fail(c, err)
		return
	}
	current, err := mustUser(c)
	if err != nil {
		fail(c, err)
		return
	}
	var in models.UserInput
	if err := bindJSON(c, &in); err != nil {
		fail(c, err)
		return
	}
	if err := in.Validate(false); err != nil {
		fail(c, err)
		return
	}
	if id == current.ID && in.IsActive != nil && !*in.IsActive {
		fail(c, apperror.Validation("isActive", "You cannot deactivate your own account"))
		return
	}

	set := map[string]interface{}{}
	for key, v := range map[string]*string{"name": in.Name, "email": in.Email, "phone": in.Phone, "avatar": in.Avatar} {
		if v != nil {
			set[key] = *v
		}
	}
	if in.Role != nil {
		set["role"] = *in.Role
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}
	if in.Password != nil {
		hash, err := ctrl.hashPassword(*in.Password)
		if err != nil {
			fail(c, err)
			return
		}
		set["password"] = hash
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := ctrl.Users.Update(ctx, id, set)
	if err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "update", "user", id.Hex())
	ok(c, "User updated successfully", gin.H{"user": user})
}

// DeleteUser menangani penghapusan akun. Admin tidak dapat menghapus
// akunnya sendiri.
func (ctrl *Controller) DeleteUser(c *gin.Context) {
	id, err := paramID(c, "id", "user")
	if err != nil {
		fail(c, err)
		return
	}
	current, err := mustUser(c)
	if err != nil {
		fail(c, err)
		return
	}
	if id == current.ID {
		fail(c, apperror.Validation("id", "You cannot delete your own account"))
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ctrl.Users.Delete(ctx, id); err != nil {
		fail(c, err)
		return
	}
	logger.LogCRUD(c, "delete", "user", id.Hex())
	ok(c, "User deleted successfully", nil)
}
