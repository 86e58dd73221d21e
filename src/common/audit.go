package common

import (
	"clubops/src/db"
	"clubops/src/models"
	"clubops/src/types"
	"log"

	"github.com/gin-gonic/gin"
)

// Actor identifies who performed an audited action.
type Actor struct {
	Email string
	Name  string
	Type  types.ActorType
	IP    string
}

func ActorFromContext(ctx *gin.Context) Actor {
	return Actor{
		Email: ctx.GetString("email"),
		Name:  ctx.GetString("name"),
		Type:  types.ACTOR_STAFF,
		IP:    ctx.ClientIP(),
	}
}

var SystemActor = Actor{Name: "system", Type: types.ACTOR_SYSTEM}

// RecordActivity appends an audit row. Failures are logged and dropped; an
// audit write must never fail the operation it describes.
func RecordActivity(actor Actor, action, resourceType, resourceId, resourceName string, details types.JSONB) {
	entry := &models.AuditLog{
		ActorEmail:   actor.Email,
		ActorName:    actor.Name,
		ActorType:    actor.Type,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceId,
		ResourceName: resourceName,
		Details:      details,
		IPAddress:    actor.IP,
	}
	db := db.GetDb()
	if err := db.Create(entry).Error; err != nil {
		log.Printf("Error recording activity [%s]: %s\n", action, err.Error())
	}
}
