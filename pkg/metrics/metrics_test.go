package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.AddBytes(DirectionEncode, 1000)
	m.AddBytes(DirectionEncode, 24)
	m.AddFrames(DirectionEncode, 3)
	m.AddFrames(DirectionDecode, 2)
	m.RecordJob(DirectionEncode, nil)
	m.RecordJob(DirectionDecode, errors.New("boom"))

	assert.Equal(t, 1024.0, testutil.ToFloat64(m.bytesTotal.WithLabelValues(DirectionEncode)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.framesTotal.WithLabelValues(DirectionEncode)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.framesTotal.WithLabelValues(DirectionDecode)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobsTotal.WithLabelValues(DirectionEncode, StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobsTotal.WithLabelValues(DirectionDecode, StatusError)))
}

func TestMetrics_StageDuration(t *testing.T) {
	m := New()

	m.ObserveStage("pack", 20*time.Millisecond)
	m.ObserveStage("transcode", 0)

	assert.Equal(t, 2, testutil.CollectAndCount(m.stageDuration))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.AddBytes(DirectionDecode, 5)
	m.RecordJob(DirectionDecode, nil)

	path := filepath.Join(t.TempDir(), "bytereel.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `bytereel_bytes_total{direction="decode"} 5`), text)
	assert.True(t, strings.Contains(text, `bytereel_jobs_total{direction="decode",status="success"} 1`), text)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	m.AddBytes(DirectionEncode, 1)
	m.AddFrames(DirectionEncode, 1)
	m.RecordJob(DirectionEncode, nil)
	m.ObserveStage("pack", time.Second)
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
}
