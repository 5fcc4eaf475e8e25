package blocklist

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsSubsystem = "handler"

// Metrics 黑名单协调器指标
type Metrics struct {
	BlockedNodes         prometheus.Gauge
	Listeners            prometheus.Gauge
	NodesBlocked         prometheus.Counter
	NodesUnblocked       prometheus.Counter
	TimeoutChecks        prometheus.Counter
	CatchUpNotifications prometheus.Counter
}

// NewMetrics 创建指标并注册到 reg
//
// reg 为 nil 时不注册，指标仍可正常更新。
// 同名指标已注册时复用已有的收集器。
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := newMetrics(namespace)
	if reg == nil {
		return m, nil
	}

	var err error
	m.BlockedNodes = registerGauge(reg, m.BlockedNodes, &err)
	m.Listeners = registerGauge(reg, m.Listeners, &err)
	m.NodesBlocked = registerCounter(reg, m.NodesBlocked, &err)
	m.NodesUnblocked = registerCounter(reg, m.NodesUnblocked, &err)
	m.TimeoutChecks = registerCounter(reg, m.TimeoutChecks, &err)
	m.CatchUpNotifications = registerCounter(reg, m.CatchUpNotifications, &err)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newMetrics(namespace string) *Metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      name,
			Help:      help,
		})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      name,
			Help:      help,
		})
	}
	return &Metrics{
		BlockedNodes:         gauge("blocked_nodes", "Number of currently blocked nodes."),
		Listeners:            gauge("listeners", "Number of registered blocklist listeners."),
		NodesBlocked:         counter("nodes_blocked_total", "Blocked node records newly added or changed by a merge."),
		NodesUnblocked:       counter("nodes_unblocked_total", "Blocked node records removed after timing out."),
		TimeoutChecks:        counter("timeout_checks_total", "Completed timeout checks."),
		CatchUpNotifications: counter("catch_up_notifications_total", "Catch-up notifications delivered to newly registered listeners."),
	}
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge, errp *error) prometheus.Gauge {
	c := register(reg, g, errp)
	if existing, ok := c.(prometheus.Gauge); ok {
		return existing
	}
	return g
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, errp *error) prometheus.Counter {
	r := register(reg, c, errp)
	if existing, ok := r.(prometheus.Counter); ok {
		return existing
	}
	return c
}

func register(reg prometheus.Registerer, c prometheus.Collector, errp *error) prometheus.Collector {
	if *errp != nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		*errp = err
	}
	return c
}
