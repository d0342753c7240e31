package connection

import (
	"net"
	"testing"
	"time"
)

type mockAddr struct{}

func (m *mockAddr) Network() string { return "tcp" }
func (m *mockAddr) String() string  { return "127.0.0.1:0" }

type mockConn struct{}

func (m *mockConn) Read(b []byte) (n int, err error)   { return 0, nil }
func (m *mockConn) Write(b []byte) (n int, err error)  { return len(b), nil }
func (m *mockConn) Close() error                       { return nil }
func (m *mockConn) LocalAddr() net.Addr                { return &mockAddr{} }
func (m *mockConn) RemoteAddr() net.Addr               { return &mockAddr{} }
func (m *mockConn) SetDeadline(t time.Time) error      { return nil }
func (m *mockConn) SetReadDeadline(t time.Time) error  { return nil }
func (m *mockConn) SetWriteDeadline(t time.Time) error { return nil }

func TestManager_Register(t *testing.T) {
	m := NewManager(10)
	conn := &mockConn{}

	err := m.Register("conn1", "Z-01", "Springfield", conn)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if m.Count() != 1 {
		t.Errorf("Expected 1 connection, got %d", m.Count())
	}

	station, exists := m.Get("conn1")
	if !exists {
		t.Fatal("Station not found")
	}

	if station.Zone != "Z-01" {
		t.Errorf("Expected zone Z-01, got %s", station.Zone)
	}
}

func TestManager_RegisterMaxConnections(t *testing.T) {
	m := NewManager(2)
	conn := &mockConn{}

	m.Register("conn1", "Z-01", "Springfield", conn)
	m.Register("conn2", "Z-02", "Springfield", conn)

	// Third connection should fail
	err := m.Register("conn3", "Z-03", "Springfield", conn)
	if err != ErrMaxConnectionsReached {
		t.Errorf("Expected ErrMaxConnectionsReached, got %v", err)
	}
}

func TestManager_Unregister(t *testing.T) {
	m := NewManager(10)
	conn := &mockConn{}

	m.Register("conn1", "Z-01", "Springfield", conn)
	m.Register("conn2", "Z-01", "Springfield", conn)

	err := m.Unregister("conn1")
	if err != nil {
		t.Fatalf("Unregister failed: %v", err)
	}

	if m.Count() != 1 {
		t.Errorf("Expected 1 connection, got %d", m.Count())
	}

	// Zone should still have one station
	connIDs := m.GetByZone("Z-01")
	if len(connIDs) != 1 {
		t.Errorf("Expected 1 connection for zone, got %d", len(connIDs))
	}
}

func TestManager_GetByZone(t *testing.T) {
	m := NewManager(10)
	conn := &mockConn{}

	m.Register("conn1", "Z-01", "Springfield", conn)
	m.Register("conn2", "Z-01", "Springfield", conn)
	m.Register("conn3", "Z-02", "Springfield", conn)

	connIDs := m.GetByZone("Z-01")
	if len(connIDs) != 2 {
		t.Errorf("Expected 2 connections for Z-01, got %d", len(connIDs))
	}

	connIDs = m.GetByZone("Z-02")
	if len(connIDs) != 1 {
		t.Errorf("Expected 1 connection for Z-02, got %d", len(connIDs))
	}
}

func TestManager_UpdateActivity(t *testing.T) {
	m := NewManager(10)
	conn := &mockConn{}

	m.Register("conn1", "Z-01", "Springfield", conn)

	station, _ := m.Get("conn1")
	firstHeard := station.GetLastHeardFrom()

	time.Sleep(10 * time.Millisecond)

	err := m.UpdateActivity("conn1")
	if err != nil {
		t.Fatalf("UpdateActivity failed: %v", err)
	}

	station, _ = m.Get("conn1")
	if !station.GetLastHeardFrom().After(firstHeard) {
		t.Error("LastHeardFrom was not updated")
	}
}

func TestManager_GetInactiveConnections(t *testing.T) {
	m := NewManager(10)
	conn := &mockConn{}

	m.Register("conn1", "Z-01", "Springfield", conn)
	m.Register("conn2", "Z-02", "Springfield", conn)

	// Make conn1 inactive by manually setting its timestamp
	station1, _ := m.Get("conn1")
	station1.mu.Lock()
	station1.LastHeardFrom = time.Now().Add(-5 * time.Minute)
	station1.mu.Unlock()

	inactive := m.GetInactiveConnections(2 * time.Minute)
	if len(inactive) != 1 {
		t.Errorf("Expected 1 inactive connection, got %d", len(inactive))
	}

	if inactive[0] != "conn1" {
		t.Errorf("Expected conn1 to be inactive, got %s", inactive[0])
	}
}

func TestManager_Stats(t *testing.T) {
	m := NewManager(100)
	conn := &mockConn{}

	m.Register("conn1", "Z-01", "Springfield", conn)
	m.Register("conn2", "Z-01", "Springfield", conn)
	m.Register("conn3", "Z-02", "Springfield", conn)

	stats := m.Stats()
	if stats.TotalConnections != 3 {
		t.Errorf("Expected 3 connections, got %d", stats.TotalConnections)
	}
	if stats.UniqueZones != 2 {
		t.Errorf("Expected 2 unique zones, got %d", stats.UniqueZones)
	}
	if stats.MaxConnections != 100 {
		t.Errorf("Expected max 100, got %d", stats.MaxConnections)
	}
}
