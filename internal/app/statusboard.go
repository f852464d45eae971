package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/acmehome/fieldops/internal/ports"
)

// apiTimeout bounds each Kubernetes API call made while gathering a report.
const apiTimeout = 2 * time.Second

// StatusReport is everything one render of the status board needs.
// Empty fields mean the corresponding API call failed; the page renders
// whatever it has rather than erroring, so the board stays up while the
// cluster is mid-upgrade.
type StatusReport struct {
	ControlPlaneVersion string
	NodeVersion         string
	PodName             string
	NodeName            string
	Groups              []ports.NodeGroup
	GatheredAt          time.Time
}

// StatusBoard gathers cluster state for the upgrade demo page.
type StatusBoard struct {
	inspector ports.ClusterInspector
	clock     ports.Clock
	log       *slog.Logger

	namespace     string
	labelSelector string
	podName       string
	nodeName      string
}

// NewStatusBoard wires the status board to a cluster inspector.
// podName and nodeName identify the pod serving the page; they come from the
// downward API in-cluster.
func NewStatusBoard(inspector ports.ClusterInspector, clock ports.Clock, log *slog.Logger,
	namespace, labelSelector, podName, nodeName string) *StatusBoard {
	if log == nil {
		log = slog.Default()
	}
	return &StatusBoard{
		inspector:     inspector,
		clock:         clock,
		log:           log,
		namespace:     namespace,
		labelSelector: labelSelector,
		podName:       podName,
		nodeName:      nodeName,
	}
}

// Gather collects a fresh report. Each API call gets its own short timeout
// and failures degrade to empty data independently.
func (b *StatusBoard) Gather(ctx context.Context) StatusReport {
	report := StatusReport{
		PodName:    b.podName,
		NodeName:   b.nodeName,
		GatheredAt: b.clock.Now(),
	}

	{
		cctx, cancel := context.WithTimeout(ctx, apiTimeout)
		v, err := b.inspector.ControlPlaneVersion(cctx)
		cancel()
		if err != nil {
			b.log.Warn("control plane version unavailable", "error", err)
		} else {
			report.ControlPlaneVersion = v
		}
	}

	if b.nodeName != "" {
		cctx, cancel := context.WithTimeout(ctx, apiTimeout)
		v, err := b.inspector.NodeKubeletVersion(cctx, b.nodeName)
		cancel()
		if err != nil {
			b.log.Warn("node version unavailable", "node", b.nodeName, "error", err)
		} else {
			report.NodeVersion = v
		}
	}

	{
		cctx, cancel := context.WithTimeout(ctx, apiTimeout)
		groups, err := b.inspector.PodsByNode(cctx, b.namespace, b.labelSelector)
		cancel()
		if err != nil {
			b.log.Warn("pod topology unavailable", "namespace", b.namespace, "selector", b.labelSelector, "error", err)
		} else {
			report.Groups = groups
		}
	}

	return report
}
