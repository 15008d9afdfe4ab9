package chat

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"EMProject/logger"
	msg "EMProject/module/message"
	userservice "EMProject/module/user/service"
	"EMProject/tools/errs"
	"EMProject/tools/safe"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Identity is the authenticated principal attached to the upgrade
// request by the auth middleware.
type Identity struct {
	UserID   string
	Username string
}

// Presence is the optional online-status sink (redis in production).
type Presence interface {
	Online(ctx context.Context, userID, connID string) error
	Offline(ctx context.Context, userID, connID string) error
}

// Relay forwards a chat payload toward other gateway nodes when the
// recipient has no connection here.
type Relay interface {
	Publish(userID string, payload []byte) error
}

// Server is the messaging gateway: it owns the registry and drives the
// per-connection state machine (connecting -> authenticated -> closed).
type Server struct {
	registry *Registry
	store    msg.Store
	users    userservice.Resolver
	presence Presence
	relay    Relay

	// identityFn pulls the authenticated identity off the request;
	// overridable in tests.
	identityFn func(*gin.Context) *Identity
}

func NewServer(store msg.Store, users userservice.Resolver, identityFn func(*gin.Context) *Identity) *Server {
	return &Server{
		registry:   NewRegistry(),
		store:      store,
		users:      users,
		identityFn: identityFn,
	}
}

func (s *Server) SetPresence(p Presence) { s.presence = p }
func (s *Server) SetRelay(r Relay)       { s.relay = r }
func (s *Server) Registry() *Registry    { return s.registry }

// HandleWS upgrades the request and runs the connection until it
// closes. An upgrade without an authenticated identity is refused
// before any registry state is created.
func (s *Server) HandleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Infof("[ws] upgrade failed: %v", err)
		return
	}

	id := s.identityFn(c)
	if id == nil {
		// connecting -> closed, never authenticated
		deadline := time.Now().Add(writeWait)
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication required"),
			deadline)
		_ = ws.Close()
		return
	}

	client := NewClient(id.UserID, id.Username, ws)
	s.registry.Register(id.UserID, client)
	s.markOnline(client)
	logger.Infof("[ws] connected user=%s conn=%s", id.UserID, client.ID)

	// Exactly one teardown, whichever path ends the connection.
	defer func() {
		s.registry.Unregister(id.UserID, client)
		s.markOffline(client)
		client.Close()
		logger.Infof("[ws] closed user=%s conn=%s", id.UserID, client.ID)
	}()

	safe.Go(client.writePump)

	for {
		mt, raw, rerr := ws.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Debug("[ws] peer closed: " + rerr.Error())
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Debug("[ws] read timeout: " + rerr.Error())
			} else {
				logger.Debug("[ws] read error: " + rerr.Error())
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		s.HandleFrame(c.Request.Context(), client, raw)
	}
}

// HandleFrame processes one inbound frame from sender. Frame errors are
// reported to the sender only and never terminate the connection.
func (s *Server) HandleFrame(ctx context.Context, sender *Client, raw []byte) {
	f, err := ParseInbound(raw)
	if err != nil || f.Message == "" || f.RecipientUsername == "" {
		sender.Enqueue(BuildError(ErrTextInvalidFormat))
		return
	}

	rec, err := s.users.ByUsername(ctx, f.RecipientUsername)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			sender.Enqueue(BuildError(ErrTextUnknownUser))
		} else {
			logger.Errorf("[ws] recipient lookup failed: %v", err)
			sender.Enqueue(BuildError(ErrTextStorageFailed))
		}
		return
	}

	m, err := s.store.Append(ctx,
		msg.Party{ID: sender.UserID, Username: sender.Username},
		msg.Party{ID: rec.ID, Username: rec.Username},
		f.Message,
	)
	if err != nil {
		logger.Errorf("[ws] append failed: %v", err)
		sender.Enqueue(BuildError(ErrTextStorageFailed))
		return
	}

	// Push to the recipient only; the sender reads history over REST.
	payload := BuildChat(m)
	reached := s.registry.SendToUser(rec.ID, payload)
	if reached == 0 && s.relay != nil {
		if err := s.relay.Publish(rec.ID, payload); err != nil {
			logger.Warnf("[ws] relay publish failed: %v", err)
		}
	}
}

// DeliverLocal re-attempts delivery for a payload relayed from another
// node. Zero reached is fine; the store already holds the message.
func (s *Server) DeliverLocal(userID string, payload []byte) {
	s.registry.SendToUser(userID, payload)
}

func (s *Server) markOnline(c *Client) {
	if s.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.presence.Online(ctx, c.UserID, c.ID); err != nil {
		logger.Warnf("[ws] presence online failed: %v", err)
	}
}

func (s *Server) markOffline(c *Client) {
	if s.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.presence.Offline(ctx, c.UserID, c.ID); err != nil {
		logger.Warnf("[ws] presence offline failed: %v", err)
	}
}
