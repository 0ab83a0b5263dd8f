package app

import (
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.EditCount != 0 || s.AvgEditNs != 0 || s.MaxEditNs != 0 {
		t.Errorf("fresh snapshot = %+v", s)
	}
}

func TestMetricsRecordEdit(t *testing.T) {
	m := NewMetrics()

	m.RecordEdit(10*time.Millisecond, 0)
	m.RecordEdit(20*time.Millisecond, 2)
	m.RecordEdit(6*time.Millisecond, 1)
	m.RecordSaveFailure()

	s := m.Snapshot()
	if s.EditCount != 3 {
		t.Errorf("EditCount = %d, want 3", s.EditCount)
	}
	if s.AvgEdit() != 12*time.Millisecond {
		t.Errorf("AvgEdit() = %v, want 12ms", s.AvgEdit())
	}
	if s.MaxEditNs != int64(20*time.Millisecond) {
		t.Errorf("MaxEditNs = %d, want 20ms", s.MaxEditNs)
	}
	if s.LastEditNs != int64(6*time.Millisecond) {
		t.Errorf("LastEditNs = %d, want 6ms", s.LastEditNs)
	}
	if s.Dropped != 3 || s.SaveFailures != 1 {
		t.Errorf("Dropped = %d, SaveFailures = %d", s.Dropped, s.SaveFailures)
	}
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.RecordEdit(time.Duration(i)*time.Millisecond, 1)
		}(i)
	}
	wg.Wait()

	s := m.Snapshot()
	if s.EditCount != 50 || s.Dropped != 50 {
		t.Errorf("snapshot = %+v", s)
	}
	if s.MaxEditNs != int64(50*time.Millisecond) {
		t.Errorf("MaxEditNs = %d, want 50ms", s.MaxEditNs)
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)
	if timer.Elapsed() < 2*time.Millisecond {
		t.Errorf("Elapsed() = %v", timer.Elapsed())
	}
}
