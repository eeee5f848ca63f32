package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/warungku/warung-app/services"
	"github.com/warungku/warung-app/utils"
	"github.com/warungku/warung-app/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type StaffWSController struct {
	DB                *gorm.DB
	DefaultTenantSlug string
}

func NewStaffWSController(db *gorm.DB, defaultSlug string) *StaffWSController {
	return &StaffWSController{DB: db, DefaultTenantSlug: defaultSlug}
}

// StaffWSHandler -> koneksi realtime staff. Client terdaftar pada tenant
// scope-nya sendiri; event tenant lain tidak pernah sampai ke sini.
func (sc *StaffWSController) StaffWSHandler(c *gin.Context) {
	actor := currentActor(c, sc.DB)

	scope, err := services.ResolveTenantScope(actor, c.Request.URL.Path, sc.DefaultTenantSlug)
	if err != nil || scope.Kind != services.ScopeAuthenticated {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("ws: upgrade failed: %v", err)
		return
	}

	clientID := ws.RegisterClient(conn, scope.TenantID)
	utils.InfoLogger.Printf("ws: staff connected to tenant %d (%s)", scope.TenantID, clientID)

	go func() {
		defer ws.UnregisterClient(clientID)
		for {
			// Hub hanya broadcast; pesan masuk diabaikan, read loop dipakai
			// untuk mendeteksi koneksi putus.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
