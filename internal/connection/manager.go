package connection

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// StationInfo holds information about a connected sensor station
type StationInfo struct {
	ConnectionID  string
	Zone          string
	City          string
	ConnectedAt   time.Time
	LastHeardFrom time.Time
	Conn          net.Conn
	mu            sync.RWMutex
}

// UpdateLastHeardFrom updates the last activity timestamp
func (s *StationInfo) UpdateLastHeardFrom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastHeardFrom = time.Now()
}

// GetLastHeardFrom returns the last activity timestamp
func (s *StationInfo) GetLastHeardFrom() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastHeardFrom
}

// Manager manages all active station connections
type Manager struct {
	stations map[string]*StationInfo // key: connection_id
	byZone   map[string][]string     // key: zone, value: []connection_id
	mu       sync.RWMutex
	maxConns int
}

// NewManager creates a new connection manager
func NewManager(maxConnections int) *Manager {
	return &Manager{
		stations: make(map[string]*StationInfo),
		byZone:   make(map[string][]string),
		maxConns: maxConnections,
	}
}

// Register adds a new station connection
func (m *Manager) Register(connectionID, zone, city string, conn net.Conn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.stations) >= m.maxConns {
		return ErrMaxConnectionsReached
	}

	if _, exists := m.stations[connectionID]; exists {
		return fmt.Errorf("connection ID %s already registered", connectionID)
	}

	now := time.Now()
	station := &StationInfo{
		ConnectionID:  connectionID,
		Zone:          zone,
		City:          city,
		ConnectedAt:   now,
		LastHeardFrom: now,
		Conn:          conn,
	}

	m.stations[connectionID] = station
	m.byZone[zone] = append(m.byZone[zone], connectionID)

	return nil
}

// Unregister removes a station connection
func (m *Manager) Unregister(connectionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	station, exists := m.stations[connectionID]
	if !exists {
		return fmt.Errorf("connection ID %s not found", connectionID)
	}

	zone := station.Zone
	if connIDs, ok := m.byZone[zone]; ok {
		for i, id := range connIDs {
			if id == connectionID {
				m.byZone[zone] = append(connIDs[:i], connIDs[i+1:]...)
				break
			}
		}
		if len(m.byZone[zone]) == 0 {
			delete(m.byZone, zone)
		}
	}

	delete(m.stations, connectionID)

	return nil
}

// Get retrieves station information by connection ID
func (m *Manager) Get(connectionID string) (*StationInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	station, exists := m.stations[connectionID]
	return station, exists
}

// GetByZone retrieves all connection IDs for a zone
func (m *Manager) GetByZone(zone string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	connIDs := m.byZone[zone]
	// Return a copy to avoid race conditions
	result := make([]string, len(connIDs))
	copy(result, connIDs)
	return result
}

// UpdateActivity updates the last heard from timestamp for a connection
func (m *Manager) UpdateActivity(connectionID string) error {
	m.mu.RLock()
	station, exists := m.stations[connectionID]
	m.mu.RUnlock()

	if !exists {
		return fmt.Errorf("connection ID %s not found", connectionID)
	}

	station.UpdateLastHeardFrom()
	return nil
}

// GetInactiveConnections returns connection IDs that haven't been heard from
// in the given duration
func (m *Manager) GetInactiveConnections(timeout time.Duration) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	var inactive []string

	for connID, station := range m.stations {
		if now.Sub(station.GetLastHeardFrom()) > timeout {
			inactive = append(inactive, connID)
		}
	}

	return inactive
}

// Count returns the total number of active connections
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stations)
}

// CountByZone returns the number of active connections per zone
func (m *Manager) CountByZone() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]int)
	for zone, connIDs := range m.byZone {
		result[zone] = len(connIDs)
	}
	return result
}

// Stats returns statistics about the connection manager
func (m *Manager) Stats() ManagerStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return ManagerStats{
		TotalConnections: len(m.stations),
		UniqueZones:      len(m.byZone),
		MaxConnections:   m.maxConns,
	}
}

// ManagerStats contains statistics about the connection manager
type ManagerStats struct {
	TotalConnections int
	UniqueZones      int
	MaxConnections   int
}

var (
	ErrMaxConnectionsReached = &ConnectionError{"maximum connections reached"}
)

// ConnectionError represents a connection error
type ConnectionError struct {
	msg string
}

func (e *ConnectionError) Error() string {
	return e.msg
}
