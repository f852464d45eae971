package kube

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// pollInterval is how often rollout status is re-checked.
const pollInterval = 2 * time.Second

// WaitForDeploymentRollout polls the named Deployment until the updated
// replicas are all available or the context expires. This is the structured
// replacement for "apply and hope": upgrade verification blocks on it.
func (i *Inspector) WaitForDeploymentRollout(ctx context.Context, namespace, name string) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		dep, err := i.clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return fmt.Errorf("failed to get deployment %s/%s: %w", namespace, name, err)
		}

		desired := int32(1)
		if dep.Spec.Replicas != nil {
			desired = *dep.Spec.Replicas
		}
		if dep.Generation <= dep.Status.ObservedGeneration &&
			dep.Status.UpdatedReplicas == desired &&
			dep.Status.AvailableReplicas == desired {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for deployment %s/%s rollout (updated %d/%d, available %d/%d): %w",
				namespace, name, dep.Status.UpdatedReplicas, desired, dep.Status.AvailableReplicas, desired, ctx.Err())
		case <-ticker.C:
		}
	}
}

// PodLogs fetches recent logs from pods matching the selector. Used to print
// diagnostics when a rollout fails.
func (i *Inspector) PodLogs(ctx context.Context, namespace, labelSelector string, tailLines int64) (map[string]string, error) {
	pods, err := i.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	logs := make(map[string]string, len(pods.Items))
	for _, pod := range pods.Items {
		req := i.clientset.CoreV1().Pods(namespace).GetLogs(pod.Name, &corev1.PodLogOptions{
			TailLines: &tailLines,
		})
		stream, err := req.Stream(ctx)
		if err != nil {
			logs[pod.Name] = fmt.Sprintf("(logs unavailable: %v)", err)
			continue
		}
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, stream)
		stream.Close()
		if copyErr != nil {
			logs[pod.Name] = fmt.Sprintf("(log stream interrupted: %v)", copyErr)
			continue
		}
		logs[pod.Name] = buf.String()
	}
	return logs, nil
}
