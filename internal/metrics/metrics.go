// Package metrics 服务的 Prometheus 指标，GET /metrics 暴露
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "microdrama"

// HTTPRequests 按方法、路由、状态码统计请求数
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "http_requests_total",
	Help:      "Total HTTP requests handled.",
}, []string{"method", "path", "status"})

// HTTPDuration 请求耗时
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request latency in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "path"})

// PlaybackSigns 播放地址签名结果：signed / unsigned / failed
var PlaybackSigns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "playback_sign_total",
	Help:      "Playback URL generations by outcome.",
}, []string{"audience", "outcome"})

// RatingsRecorded 评分事件数
var RatingsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "ratings_recorded_total",
	Help:      "Rating events appended.",
}, []string{"value"})

// EventsPublished Kafka 事件发送结果
var EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "events_published_total",
	Help:      "Domain events published by topic and result.",
}, []string{"topic", "result"})

// SearchRequests 搜索后端：elasticsearch / database
var SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "search_requests_total",
	Help:      "Show searches by backend that served them.",
}, []string{"backend"})

// Handler Prometheus 抓取端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// GinMiddleware 记录请求数与耗时，path 使用路由模板避免高基数
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		HTTPRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
