package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"blog-service/internal/logger"
	"blog-service/internal/model"
)

const subscriptionQuery = `subscription {
	blogPostPublished {
		id
		title
		content
		published
		createdAt
		updatedAt
		author {
			id
			username
			email
		}
	}
}`

// graphql-ws protocol frame types (subscriptions-transport-ws).
const (
	msgConnectionInit = "connection_init"
	msgConnectionAck  = "connection_ack"
	msgStart          = "start"
	msgData           = "data"
	msgError          = "error"
	msgComplete       = "complete"
	msgKeepAlive      = "ka"
)

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type postPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"author"`
}

type dataPayload struct {
	Data struct {
		BlogPostPublished postPayload `json:"blogPostPublished"`
	} `json:"data"`
}

// Client subscribes to the blogPostPublished stream over WebSocket and
// converts incoming frames into events.
type Client struct {
	url  string
	conn *websocket.Conn
	log  *logger.Logger
}

func NewClient(url string, log *logger.Logger) *Client {
	return &Client{url: url, log: log}
}

// Connect dials the server, performs the graphql-ws handshake and starts
// the subscription. The returned channel closes when the server completes
// the stream, the connection drops, or ctx is cancelled.
func (c *Client) Connect(ctx context.Context) (<-chan model.PublishedEvent, error) {
	conn, _, err := websocket.Dial(ctx, c.url, &websocket.DialOptions{
		Subprotocols: []string{"graphql-ws"},
	})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.url, err)
	}
	c.conn = conn

	if err := wsjson.Write(ctx, conn, wsMessage{Type: msgConnectionInit}); err != nil {
		conn.Close(websocket.StatusInternalError, "handshake failed")
		return nil, fmt.Errorf("send connection_init: %w", err)
	}

	var ack wsMessage
	if err := wsjson.Read(ctx, conn, &ack); err != nil {
		conn.Close(websocket.StatusInternalError, "handshake failed")
		return nil, fmt.Errorf("read connection_ack: %w", err)
	}
	if ack.Type != msgConnectionAck {
		conn.Close(websocket.StatusProtocolError, "unexpected handshake reply")
		return nil, fmt.Errorf("expected %s, got %s", msgConnectionAck, ack.Type)
	}

	startPayload, err := json.Marshal(map[string]string{"query": subscriptionQuery})
	if err != nil {
		conn.Close(websocket.StatusInternalError, "handshake failed")
		return nil, err
	}
	if err := wsjson.Write(ctx, conn, wsMessage{ID: "1", Type: msgStart, Payload: startPayload}); err != nil {
		conn.Close(websocket.StatusInternalError, "handshake failed")
		return nil, fmt.Errorf("send start: %w", err)
	}

	c.log.Info("Subscription started", slog.String("url", c.url))

	out := make(chan model.PublishedEvent)
	go c.readPump(ctx, out)
	return out, nil
}

func (c *Client) readPump(ctx context.Context, out chan<- model.PublishedEvent) {
	defer close(out)
	defer c.conn.Close(websocket.StatusNormalClosure, "done")

	for {
		var msg wsMessage
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			if ctx.Err() == nil {
				c.log.Error("Subscription connection lost", slog.String("error", err.Error()))
			}
			return
		}

		switch msg.Type {
		case msgData:
			evt, err := decodeEvent(msg.Payload)
			if err != nil {
				c.log.Error("Failed to decode event", slog.String("error", err.Error()))
				continue
			}
			select {
			case out <- evt:
			case <-ctx.Done():
				return
			}
		case msgError:
			c.log.Error("Subscription error frame", slog.String("payload", string(msg.Payload)))
		case msgComplete:
			c.log.Info("Subscription completed by server")
			return
		case msgKeepAlive:
		default:
			c.log.Debug("Ignoring frame", slog.String("type", msg.Type))
		}
	}
}

// Close tears the connection down. The read pump notices and closes the
// event channel.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close(websocket.StatusNormalClosure, "client closed")
}

func decodeEvent(raw json.RawMessage) (model.PublishedEvent, error) {
	var payload dataPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.PublishedEvent{}, err
	}

	p := payload.Data.BlogPostPublished
	postID, err := strconv.ParseInt(p.ID, 10, 64)
	if err != nil {
		return model.PublishedEvent{}, fmt.Errorf("malformed post id %q: %w", p.ID, err)
	}
	authorID, err := strconv.ParseInt(p.Author.ID, 10, 64)
	if err != nil {
		return model.PublishedEvent{}, fmt.Errorf("malformed author id %q: %w", p.Author.ID, err)
	}

	return model.PublishedEvent{
		Post: &model.Post{
			ID:        postID,
			AuthorID:  authorID,
			Title:     p.Title,
			Content:   p.Content,
			Published: p.Published,
			CreatedAt: pgtype.Timestamp{Time: p.CreatedAt, Valid: true},
			UpdatedAt: pgtype.Timestamp{Time: p.UpdatedAt, Valid: true},
		},
		Author: &model.User{
			ID:       authorID,
			Username: p.Author.Username,
			Email:    p.Author.Email,
		},
		OccurredAt: time.Now(),
	}, nil
}
