// Package kube implements cluster inspection over the Kubernetes API.
//
// In a pod it uses the in-cluster service account; outside it falls back to
// the ambient kubeconfig, so the same binary serves the demo page locally.
package kube

import (
	"context"
	"fmt"
	"sort"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/acmehome/fieldops/internal/ports"
)

// Inspector implements ports.ClusterInspector over a clientset.
type Inspector struct {
	clientset kubernetes.Interface
}

// NewInspector wraps an existing clientset. Tests pass a fake.
func NewInspector(clientset kubernetes.Interface) *Inspector {
	return &Inspector{clientset: clientset}
}

// NewEnvironmentInspector builds an inspector from the in-cluster service
// account when running in a pod, otherwise from the ambient kubeconfig.
func NewEnvironmentInspector() (*Inspector, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
		cfg, err = clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
			loadingRules, &clientcmd.ConfigOverrides{}).ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("no in-cluster config and no kubeconfig: %w", err)
		}
	}
	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}
	return &Inspector{clientset: clientset}, nil
}

// ControlPlaneVersion returns the API server version as "v<major>.<minor>".
func (i *Inspector) ControlPlaneVersion(ctx context.Context) (string, error) {
	// Discovery does not take a context; rely on the rest client timeout.
	info, err := i.clientset.Discovery().ServerVersion()
	if err != nil {
		return "", fmt.Errorf("failed to read server version: %w", err)
	}
	return shortVersion(info.GitVersion), nil
}

// NodeKubeletVersion returns the node's kubelet version as "v<major>.<minor>".
func (i *Inspector) NodeKubeletVersion(ctx context.Context, nodeName string) (string, error) {
	node, err := i.clientset.CoreV1().Nodes().Get(ctx, nodeName, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get node %s: %w", nodeName, err)
	}
	return shortVersion(node.Status.NodeInfo.KubeletVersion), nil
}

// PodsByNode lists matching pods grouped by the node running them. Each group
// carries the node's kubelet version so the board can show mixed-version
// topology mid-upgrade.
func (i *Inspector) PodsByNode(ctx context.Context, namespace, labelSelector string) ([]ports.NodeGroup, error) {
	pods, err := i.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	byNode := make(map[string][]ports.PodInfo)
	for _, pod := range pods.Items {
		node := pod.Spec.NodeName
		if node == "" {
			node = "(unscheduled)"
		}
		byNode[node] = append(byNode[node], ports.PodInfo{
			Name:  pod.Name,
			Phase: string(pod.Status.Phase),
		})
	}

	groups := make([]ports.NodeGroup, 0, len(byNode))
	for node, podInfos := range byNode {
		sort.Slice(podInfos, func(a, b int) bool { return podInfos[a].Name < podInfos[b].Name })
		group := ports.NodeGroup{Node: node, Pods: podInfos}
		if node != "(unscheduled)" {
			if v, err := i.NodeKubeletVersion(ctx, node); err == nil {
				group.KubeletVersion = v
			}
		}
		groups = append(groups, group)
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].Node < groups[b].Node })
	return groups, nil
}

// shortVersion trims a full version like "v1.31.2-eks-abc123" to "v1.31".
func shortVersion(v string) string {
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	if len(parts) < 2 {
		return v
	}
	minor := strings.TrimFunc(parts[1], func(r rune) bool { return r < '0' || r > '9' })
	return "v" + parts[0] + "." + minor
}
