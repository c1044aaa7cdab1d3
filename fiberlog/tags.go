package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Tag names, подключаются через Config.Tags
const (
	TagPid       = "pid"
	TagReferer   = "referer"
	TagProtocol  = "protocol"
	TagIP        = "ip"
	TagIPs       = "ips"
	TagHost      = "host"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagUA        = "ua"
	TagLatency   = "latency"
	TagStatus    = "status"
	TagBody      = "body"
	TagBytesSent = "bytes_sent"
	TagResBody   = "res_body"
	TagQuery     = "query"
	RequestID    = "request_id"
)

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag извлекает значение поля из контекста запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

var funcTagMap = map[string]FuncTag{
	TagPid: func(c *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagReferer: func(c *fiber.Ctx, d *data) interface{} {
		return c.Get(fiber.HeaderReferer)
	},
	TagProtocol: func(c *fiber.Ctx, d *data) interface{} {
		return c.Protocol()
	},
	TagIP: func(c *fiber.Ctx, d *data) interface{} {
		return c.IP()
	},
	TagIPs: func(c *fiber.Ctx, d *data) interface{} {
		return c.Get(fiber.HeaderXForwardedFor)
	},
	TagHost: func(c *fiber.Ctx, d *data) interface{} {
		return c.Hostname()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagURL: func(c *fiber.Ctx, d *data) interface{} {
		return c.OriginalURL()
	},
	TagUA: func(c *fiber.Ctx, d *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagBody: func(c *fiber.Ctx, d *data) interface{} {
		return string(c.Body())
	},
	TagBytesSent: func(c *fiber.Ctx, d *data) interface{} {
		return len(c.Response().Body())
	},
	TagResBody: func(c *fiber.Ctx, d *data) interface{} {
		return string(c.Response().Body())
	},
	TagQuery: func(c *fiber.Ctx, d *data) interface{} {
		return c.Request().URI().QueryArgs().String()
	},
	RequestID: func(c *fiber.Ctx, d *data) interface{} {
		return c.GetRespHeader(fiber.HeaderXRequestID)
	},
}

func getFuncTagMap(cfg Config, d *data) map[string]FuncTag {
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := funcTagMap[tag]; ok {
			ftm[tag] = ft
		}
	}
	return ftm
}
