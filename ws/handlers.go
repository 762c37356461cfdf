package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// single-tenant app served from one origin
		return true
	},
}

// ServeWS attaches a browser view to one of the two named channels. Messages
// the client posts are relayed to every other subscriber of that channel.
func ServeWS(hub *Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		channel := c.Param("channel")
		if !ValidChannel(channel) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown channel")
		}
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		client := hub.Subscribe(channel)
		client.Conn = conn

		go client.writePump()
		go client.readPump(hub)
		return nil
	}
}

func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.Unregister <- c
		c.Conn.Close()
	}()
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}
		hub.Broadcast <- BroadcastMessage{Topic: c.Topic, Sender: c.ID, Data: message}
	}
}

func (c *Client) writePump() {
	for message := range c.Send {
		err := c.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			break
		}
	}
	c.Conn.Close()
}
