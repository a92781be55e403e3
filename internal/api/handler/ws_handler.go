package handler

import (
	"Prism/internal/service"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// pushInterval 实时指标推送间隔
const pushInterval = 3 * time.Second

type WsHandler struct {
	statsSvc service.StatsService
}

func NewWsHandler(statsSvc service.StatsService) *WsHandler {
	return &WsHandler{statsSvc: statsSvc}
}

// Connect 实时指标推送通道，按固定间隔推送快照直到客户端断开
func (s *WsHandler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	log.Info("实时指标 WS 连接已建立", "remote", conn.RemoteAddr().String())

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：定时推送实时指标
	ticker := time.NewTicker(pushInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ticker.C:
			stats, err := s.statsSvc.GetRealtimeStats(ctx)
			if err != nil {
				log.Error("实时指标计算失败", "err", err)
				continue
			}

			payload, err := json.Marshal(stats)
			if err != nil {
				log.Error("实时指标序列化失败", "err", err)
				continue
			}

			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err = conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Error("WS 推送失败", "err", err)
				return
			}
		case <-stopChan:
			log.Info("实时指标 WS 连接已断开", "remote", conn.RemoteAddr().String())
			return
		}
	}
}
