// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordTokenIssued()
	RecordAuthFailure()
	RecordRequestCreated()
	RecordRequestConflict()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus       *prometheus.CounterVec
	tokensIssued     prometheus.Counter
	authFailures     prometheus.Counter
	requestsCreated  prometheus.Counter
	requestConflicts prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cookiteer_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookiteer_tokens_issued_total",
			Help: "発行したセッショントークンの合計数",
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookiteer_auth_failures_total",
			Help: "セッション検証失敗の合計数",
		}),
		requestsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookiteer_food_requests_created_total",
			Help: "作成された食品リクエストの合計数",
		}),
		requestConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cookiteer_food_request_conflicts_total",
			Help: "重複により拒否された食品リクエストの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.tokensIssued,
		c.authFailures,
		c.requestsCreated,
		c.requestConflicts,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordTokenIssued はトークン発行を記録する。
func (c *Collector) RecordTokenIssued() {
	c.tokensIssued.Inc()
}

// RecordAuthFailure はセッション検証失敗を記録する。
func (c *Collector) RecordAuthFailure() {
	c.authFailures.Inc()
}

// RecordRequestCreated は食品リクエスト作成を記録する。
func (c *Collector) RecordRequestCreated() {
	c.requestsCreated.Inc()
}

// RecordRequestConflict は重複リクエストの拒否を記録する。
func (c *Collector) RecordRequestConflict() {
	c.requestConflicts.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
