//go:build linux

package screen

import (
	"bytes"
	"image/png"
	"log/slog"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// x11Backend grabs monitors through the X server, one connection per capturer.
type x11Backend struct {
	mu       sync.Mutex
	conn     *xgb.Conn
	root     xproto.Window
	screen   *xproto.ScreenInfo
	xinerama bool
}

func (x *x11Backend) connect() error {
	if x.conn != nil {
		return nil
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return errors.Wrap(err, "connect to X server")
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	x.conn = conn
	x.root = screen.Root
	x.screen = screen
	if err := xinerama.Init(conn); err != nil {
		slog.Debug("xinerama unavailable, using root window only", "error", err)
	} else {
		x.xinerama = true
	}
	return nil
}

func (x *x11Backend) monitors() ([]Monitor, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.connect(); err != nil {
		return nil, err
	}

	if x.xinerama {
		reply, err := xinerama.QueryScreens(x.conn).Reply()
		if err != nil {
			return nil, errors.Wrap(err, "query xinerama screens")
		}
		if len(reply.ScreenInfo) > 0 {
			monitors := make([]Monitor, 0, len(reply.ScreenInfo))
			for i, s := range reply.ScreenInfo {
				monitors = append(monitors, Monitor{
					Index:  i,
					X:      int(s.XOrg),
					Y:      int(s.YOrg),
					Width:  int(s.Width),
					Height: int(s.Height),
				})
			}
			return monitors, nil
		}
	}

	return []Monitor{{
		Width:  int(x.screen.WidthInPixels),
		Height: int(x.screen.HeightInPixels),
	}}, nil
}

func (x *x11Backend) grab(m Monitor) ([]byte, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.connect(); err != nil {
		return nil, err
	}

	reply, err := xproto.GetImage(x.conn, xproto.ImageFormatZPixmap, xproto.Drawable(x.root),
		int16(m.X), int16(m.Y), uint16(m.Width), uint16(m.Height), allPlanes).Reply()
	if err != nil {
		return nil, errors.Wrap(err, "get image")
	}

	img, err := bgraToRGBA(reply.Data, m.Width, m.Height)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

func (x *x11Backend) cleanup() {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.conn != nil {
		x.conn.Close()
		x.conn = nil
	}
}

// New creates a platform-specific screen capturer
func New() Capturer {
	return newBase(&x11Backend{}, "")
}
