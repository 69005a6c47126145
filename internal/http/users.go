package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/viraatdas/lendy/internal/database/users"
)

// MaxUsernameLength is the longest accepted username before normalization.
const MaxUsernameLength = 50

type UsersController struct {
	users *users.Repository
}

func NewUsersController(repo *users.Repository) *UsersController {
	return &UsersController{users: repo}
}

type createUserRequest struct {
	Username string `json:"username"`
}

// CreateUser registers a username, returning the existing record when the
// normalized username is already known.
// POST /user
func (uc *UsersController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username is required")
		return
	}

	if strings.TrimSpace(req.Username) == "" {
		respondBadRequest(c, "username is required")
		return
	}
	if len(req.Username) > MaxUsernameLength {
		respondBadRequest(c, "username must be 50 characters or less")
		return
	}

	user, err := uc.users.GetOrCreate(req.Username)
	if err != nil {
		respondInternalError(c, err, "process user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
