package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamup-dev/teamup/internal/httperr"
	"gorm.io/gorm"
)

// parseIDParam reads a numeric path parameter. On failure it writes a 400 and
// returns false.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(ctx, "Invalid "+name)
		return 0, false
	}

	return uint(id), true
}

// respondStorageError is the fallback branch for write failures. Constraint
// violations the service did not classify come back as a 400 with a readable
// hint; everything else stays a 500.
func respondStorageError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		httperr.BadRequest(ctx, "Request conflicts with existing data: duplicate value")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		httperr.BadRequest(ctx, "Request references data that does not exist")
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		httperr.BadRequest(ctx, "Request violates a data constraint")
	default:
		httperr.Internal(ctx, message)
	}
}
