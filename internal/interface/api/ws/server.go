package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"discoBot/internal/domain"
)

const ConsoleChannel = "console"

type Config struct {
	Addr string
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
	Logger  *zap.Logger
}

func (c Config) addr() string {
	if strings.TrimSpace(c.Addr) == "" {
		return ":8080"
	}
	return c.Addr
}

// Server exposes /ws/chat. Connected clients receive bot events as JSON and
// may send console commands back.
type Server struct {
	addr     string
	metrics  http.Handler
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	handler MessageHandler
	closed  bool
	readers sync.WaitGroup

	httpSrv *http.Server
}

type MessageHandler func(ctx context.Context, msg domain.Message) error

// Envelope is the frame written to clients.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		addr:    cfg.addr(),
		metrics: cfg.Metrics,
		logger:  logger.Named("ws"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// Handler builds the HTTP routes served by Start.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/chat", func(w http.ResponseWriter, r *http.Request) {
		s.handleWS(ctx, w, r)
	})
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	return mux
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.httpSrv = srv
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Warn("shutdown error", zap.Error(err))
		}
	}()

	s.logger.Info("listening", zap.String("addr", s.addr))
	err := srv.ListenAndServe()
	s.Close()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func (s *Server) handleWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("upgrade error", zap.Error(err))
		return
	}

	client := &wsClient{conn: conn}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[client] = struct{}{}
	clientCount := len(s.clients)
	s.readers.Add(1)
	s.mu.Unlock()

	s.logger.Info("client connected", zap.String("remote", r.RemoteAddr), zap.Int("clients", clientCount))

	go s.handleClient(ctx, client)
}

func (s *Server) handleClient(ctx context.Context, client *wsClient) {
	done := make(chan struct{})
	defer func() {
		close(done)
		client.conn.Close()

		s.mu.Lock()
		delete(s.clients, client)
		clientCount := len(s.clients)
		s.mu.Unlock()

		s.logger.Info("client disconnected", zap.Int("clients", clientCount))
		s.readers.Done()
	}()

	// Hijacked connections survive http.Server.Shutdown, so unblock the
	// reader once ctx is done.
	go func() {
		select {
		case <-ctx.Done():
			client.conn.Close()
		case <-done:
		}
	}()

	for {
		msgType, data, err := client.conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("read error", zap.Error(err))
			}
			return
		}

		if msgType != websocket.TextMessage {
			continue
		}

		if err := s.dispatchIncoming(ctx, data); err != nil {
			s.logger.Warn("incoming dispatch error", zap.Error(err))
		}
	}
}

// Close disconnects every client, refuses new ones and waits for their
// readers to return.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	clients := make([]*wsClient, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.conn.Close()
	}
	s.readers.Wait()
}

type incomingPayload struct {
	Text     string `json:"text"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// dispatchIncoming turns a console frame into a message. Console operators
// are trusted with moderation commands.
func (s *Server) dispatchIncoming(ctx context.Context, data []byte) error {
	handler := s.getHandler()
	if handler == nil {
		return nil
	}

	payload := incomingPayload{}
	if err := json.Unmarshal(data, &payload); err != nil {
		payload.Text = strings.TrimSpace(string(data))
	} else {
		payload.Text = strings.TrimSpace(payload.Text)
	}

	if payload.Text == "" {
		return fmt.Errorf("ws: empty incoming text")
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" {
		username = "web-user"
	}
	userID := strings.TrimSpace(payload.UserID)
	if userID == "" {
		userID = "web"
	}

	msg := domain.Message{
		Platform:          domain.PlatformConsole,
		ChannelID:         ConsoleChannel,
		MessageID:         uuid.NewString(),
		UserID:            userID,
		Username:          username,
		UserTag:           username,
		Text:              payload.Text,
		CreatedAt:         time.Now(),
		IsPlatformAdmin:   true,
		CanManageMessages: true,
	}

	return handler(ctx, msg)
}

func (s *Server) getHandler() MessageHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handler
}

func (s *Server) SetHandler(h MessageHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Broadcast writes an envelope to every connected client, dropping clients
// whose connection fails.
func (s *Server) Broadcast(ctx context.Context, typ string, data any) error {
	payload, err := json.Marshal(Envelope{Type: typ, Data: data})
	if err != nil {
		return err
	}

	s.mu.RLock()
	clients := make([]*wsClient, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := c.writeJSON(json.RawMessage(payload)); err != nil {
			s.logger.Debug("removing client due to write error", zap.Error(err))
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			c.conn.Close()
		}
	}

	return nil
}

type replyPayload struct {
	ChannelID string        `json:"channel_id"`
	Text      string        `json:"text,omitempty"`
	Embed     *domain.Embed `json:"embed,omitempty"`
}

// SendMessage answers console commands.
func (s *Server) SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error {
	if platform != domain.PlatformConsole {
		return fmt.Errorf("ws: platform %s not supported", platform)
	}
	return s.Broadcast(ctx, "reply", replyPayload{ChannelID: channelID, Text: text})
}

func (s *Server) SendEmbed(ctx context.Context, platform domain.Platform, channelID string, embed domain.Embed) error {
	if platform != domain.PlatformConsole {
		return fmt.Errorf("ws: platform %s not supported", platform)
	}
	return s.Broadcast(ctx, "reply", replyPayload{ChannelID: channelID, Embed: &embed})
}

// DeleteMessage is a no-op: console frames are not stored.
func (s *Server) DeleteMessage(context.Context, domain.Platform, string, string) error {
	return nil
}

var _ domain.OutgoingMessagePort = (*Server)(nil)
