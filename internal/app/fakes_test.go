package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"tourops/internal/domain"
)

// ---- in-memory PlannerRepository fake ----

type memRepo struct {
	mu     sync.Mutex
	nextID int

	routes         map[string]domain.Route
	segments       map[string]domain.Segment
	stops          map[string]domain.Stop
	accommodations map[string]domain.Accommodation
	rooms          map[string]domain.Room
	occupants      map[string][]domain.RoomOccupant
	logistics      map[string]domain.Logistics
	participants   map[string]domain.Participant
	segParts       map[string]map[string]bool // segmentID -> participantID set
	transfers      map[string]domain.Transfer
	vehicles       map[string][]domain.TransferVehicle
	riders         map[string][]domain.TransferRider
	transactions   map[string][]domain.Transaction
}

func newMemRepo() *memRepo {
	return &memRepo{
		routes:         map[string]domain.Route{},
		segments:       map[string]domain.Segment{},
		stops:          map[string]domain.Stop{},
		accommodations: map[string]domain.Accommodation{},
		rooms:          map[string]domain.Room{},
		occupants:      map[string][]domain.RoomOccupant{},
		logistics:      map[string]domain.Logistics{},
		participants:   map[string]domain.Participant{},
		segParts:       map[string]map[string]bool{},
		transfers:      map[string]domain.Transfer{},
		vehicles:       map[string][]domain.TransferVehicle{},
		riders:         map[string][]domain.TransferRider{},
		transactions:   map[string][]domain.Transaction{},
	}
}

func (m *memRepo) id() string {
	m.nextID++
	return fmt.Sprintf("id-%04d", m.nextID)
}

// ---- routes ----

func (m *memRepo) CreateRoute(_ context.Context, r *domain.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = m.id()
	}
	m.routes[r.ID] = *r
	return nil
}

func (m *memRepo) GetRoute(_ context.Context, id string) (domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.routes[id]
	if !ok {
		return domain.Route{}, domain.ErrNotFound
	}
	return rt, nil
}

func (m *memRepo) ListRoutes(_ context.Context) ([]domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Route{}
	for _, rt := range m.routes {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) UpdateRoute(_ context.Context, r *domain.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.routes[r.ID]; !ok {
		return domain.ErrNotFound
	}
	m.routes[r.ID] = *r
	return nil
}

func (m *memRepo) DeleteRoute(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.routes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.routes, id)
	return nil
}

// ---- segments ----

func (m *memRepo) ListSegments(_ context.Context, routeID string) ([]domain.SegmentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.SegmentView{}
	for _, s := range m.segments {
		if s.RouteID == routeID {
			out = append(out, m.segmentView(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SegmentOrder != out[j].SegmentOrder {
			return out[i].SegmentOrder < out[j].SegmentOrder
		}
		return out[i].DayNumber < out[j].DayNumber
	})
	return out, nil
}

func (m *memRepo) segmentView(s domain.Segment) domain.SegmentView {
	sv := domain.SegmentView{Segment: s, Stops: []domain.StopView{}}
	for _, st := range m.stops {
		if st.SegmentID == s.ID {
			sv.Stops = append(sv.Stops, domain.StopView{Stop: st})
		}
	}
	sort.Slice(sv.Stops, func(i, j int) bool { return sv.Stops[i].StopOrder < sv.Stops[j].StopOrder })
	return sv
}

func (m *memRepo) GetSegment(_ context.Context, id, routeID string) (domain.SegmentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.segments[id]
	if !ok || s.RouteID != routeID {
		return domain.SegmentView{}, domain.ErrNotFound
	}
	return m.segmentView(s), nil
}

func (m *memRepo) MaxDayNumber(_ context.Context, routeID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for _, s := range m.segments {
		if s.RouteID == routeID && s.DayNumber > max {
			max = s.DayNumber
		}
	}
	return max, nil
}

func (m *memRepo) CreateSegment(_ context.Context, s *domain.Segment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = m.id()
	}
	m.segments[s.ID] = *s
	return nil
}

func (m *memRepo) UpdateSegment(_ context.Context, s *domain.Segment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.segments[s.ID]
	if !ok || cur.RouteID != s.RouteID {
		return domain.ErrNotFound
	}
	m.segments[s.ID] = *s
	return nil
}

func (m *memRepo) DeleteSegment(_ context.Context, id, routeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.segments[id]
	if !ok || s.RouteID != routeID {
		return domain.ErrNotFound
	}
	delete(m.segments, id)
	return nil
}

func (m *memRepo) ReorderSegments(_ context.Context, routeID string, updates []domain.OrderUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range updates {
		s, ok := m.segments[u.ID]
		if !ok || s.RouteID != routeID {
			return domain.ErrNotFound
		}
		s.SegmentOrder = u.Order
		m.segments[u.ID] = s
	}
	return nil
}

// ---- stops ----

func (m *memRepo) ListStops(_ context.Context, segmentID string) ([]domain.StopView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.StopView{}
	for _, st := range m.stops {
		if st.SegmentID == segmentID {
			out = append(out, domain.StopView{Stop: st})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StopOrder < out[j].StopOrder })
	return out, nil
}

func (m *memRepo) CreateStop(_ context.Context, st *domain.Stop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st.ID == "" {
		st.ID = m.id()
	}
	m.stops[st.ID] = *st
	return nil
}

func (m *memRepo) ReorderStops(_ context.Context, segmentID string, updates []domain.OrderUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range updates {
		st, ok := m.stops[u.ID]
		if !ok || st.SegmentID != segmentID {
			return domain.ErrNotFound
		}
		st.StopOrder = u.Order
		m.stops[u.ID] = st
	}
	return nil
}

func (m *memRepo) DeleteStop(_ context.Context, id, segmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stops[id]
	if !ok || st.SegmentID != segmentID {
		return domain.ErrNotFound
	}
	delete(m.stops, id)
	return nil
}

// ---- accommodations ----

func (m *memRepo) ListAccommodations(_ context.Context, segmentID string) ([]domain.AccommodationView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.AccommodationView{}
	for _, a := range m.accommodations {
		if a.SegmentID != segmentID {
			continue
		}
		av := domain.AccommodationView{Accommodation: a, Rooms: []domain.RoomView{}}
		for _, rm := range m.rooms {
			if rm.AccommodationID != a.ID {
				continue
			}
			rv := domain.RoomView{Room: rm, Participants: []domain.RoomOccupantView{}}
			for _, o := range m.occupants[rm.ID] {
				rv.Participants = append(rv.Participants, domain.RoomOccupantView{RoomOccupant: o, ParticipantName: "Staff"})
			}
			av.Rooms = append(av.Rooms, rv)
		}
		out = append(out, av)
	}
	return out, nil
}

func (m *memRepo) GetAccommodation(_ context.Context, id, segmentID string) (domain.Accommodation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accommodations[id]
	if !ok || a.SegmentID != segmentID {
		return domain.Accommodation{}, domain.ErrNotFound
	}
	return a, nil
}

func (m *memRepo) CreateAccommodation(_ context.Context, a *domain.Accommodation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = m.id()
	}
	m.accommodations[a.ID] = *a
	return nil
}

func (m *memRepo) DeleteAccommodation(_ context.Context, id, segmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accommodations[id]
	if !ok || a.SegmentID != segmentID {
		return domain.ErrNotFound
	}
	delete(m.accommodations, id)
	return nil
}

func (m *memRepo) CreateRoom(_ context.Context, rm *domain.Room, occupants []domain.RoomOccupant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rm.ID == "" {
		rm.ID = m.id()
	}
	m.rooms[rm.ID] = *rm
	m.occupants[rm.ID] = append([]domain.RoomOccupant{}, occupants...)
	return nil
}

func (m *memRepo) UpdateRoom(_ context.Context, rm *domain.Room, occupants []domain.RoomOccupant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rooms[rm.ID]
	if !ok || cur.AccommodationID != rm.AccommodationID {
		return domain.ErrNotFound
	}
	m.rooms[rm.ID] = *rm
	m.occupants[rm.ID] = append([]domain.RoomOccupant{}, occupants...)
	return nil
}

func (m *memRepo) DeleteRoom(_ context.Context, id, accommodationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rm, ok := m.rooms[id]
	if !ok || rm.AccommodationID != accommodationID {
		return domain.ErrNotFound
	}
	delete(m.rooms, id)
	delete(m.occupants, id)
	return nil
}

// ---- logistics ----

func (m *memRepo) ListLogistics(_ context.Context, routeID string) ([]domain.LogisticsView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.LogisticsView{}
	for _, l := range m.logistics {
		if l.RouteID == routeID {
			out = append(out, domain.LogisticsView{Logistics: l})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) CreateLogistics(_ context.Context, l *domain.Logistics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID == "" {
		l.ID = m.id()
	}
	m.logistics[l.ID] = *l
	return nil
}

func (m *memRepo) UpdateLogistics(_ context.Context, l *domain.Logistics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.logistics[l.ID]
	if !ok || cur.RouteID != l.RouteID {
		return domain.ErrNotFound
	}
	m.logistics[l.ID] = *l
	return nil
}

func (m *memRepo) DeleteLogistics(_ context.Context, id, routeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logistics[id]
	if !ok || l.RouteID != routeID {
		return domain.ErrNotFound
	}
	delete(m.logistics, id)
	return nil
}

// ---- participants ----

func (m *memRepo) ListParticipants(_ context.Context, routeID string) ([]domain.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Participant{}
	for _, p := range m.participants {
		if p.RouteID == routeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) GetParticipant(_ context.Context, id, routeID string) (domain.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.participants[id]
	if !ok || p.RouteID != routeID {
		return domain.Participant{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *memRepo) CreateParticipant(_ context.Context, p *domain.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = m.id()
	}
	m.participants[p.ID] = *p
	return nil
}

func (m *memRepo) UpdateParticipant(_ context.Context, p *domain.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.participants[p.ID]
	if !ok || cur.RouteID != p.RouteID {
		return domain.ErrNotFound
	}
	m.participants[p.ID] = *p
	return nil
}

func (m *memRepo) DeleteParticipant(_ context.Context, id, routeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.participants[id]
	if !ok || p.RouteID != routeID {
		return domain.ErrNotFound
	}
	delete(m.participants, id)
	for segID := range m.segParts {
		delete(m.segParts[segID], id)
	}
	return nil
}

func (m *memRepo) SetParticipantSegments(_ context.Context, participantID string, segmentIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for segID := range m.segParts {
		delete(m.segParts[segID], participantID)
	}
	for _, segID := range segmentIDs {
		if m.segParts[segID] == nil {
			m.segParts[segID] = map[string]bool{}
		}
		m.segParts[segID][participantID] = true
	}
	return nil
}

func (m *memRepo) AddParticipantToSegment(_ context.Context, segmentID, participantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.segParts[segmentID][participantID] {
		return domain.ErrConflict
	}
	if m.segParts[segmentID] == nil {
		m.segParts[segmentID] = map[string]bool{}
	}
	m.segParts[segmentID][participantID] = true
	return nil
}

func (m *memRepo) RemoveParticipantFromSegment(_ context.Context, segmentID, participantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.segParts[segmentID][participantID] {
		return domain.ErrNotFound
	}
	delete(m.segParts[segmentID], participantID)
	return nil
}

// ---- transfers ----

func (m *memRepo) ListTransfers(_ context.Context, routeID string) ([]domain.TransferView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.TransferView{}
	for _, t := range m.transfers {
		if t.RouteID != routeID {
			continue
		}
		tv := domain.TransferView{Transfer: t, Vehicles: []domain.TransferVehicleView{}, Participants: []domain.TransferRiderView{}}
		for _, v := range m.vehicles[t.ID] {
			tv.TotalCost += float64(v.Quantity) * v.Cost
			tv.Vehicles = append(tv.Vehicles, domain.TransferVehicleView{TransferVehicle: v})
		}
		for _, rd := range m.riders[t.ID] {
			tv.Participants = append(tv.Participants, domain.TransferRiderView{TransferRider: rd, ParticipantName: "Staff"})
		}
		out = append(out, tv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) GetTransfer(_ context.Context, id, routeID string) (domain.Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transfers[id]
	if !ok || t.RouteID != routeID {
		return domain.Transfer{}, domain.ErrNotFound
	}
	for _, v := range m.vehicles[t.ID] {
		t.TotalCost += float64(v.Quantity) * v.Cost
	}
	return t, nil
}

func (m *memRepo) CreateTransfer(_ context.Context, t *domain.Transfer, vehicles []domain.TransferVehicle, riders []domain.TransferRider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = m.id()
	}
	m.transfers[t.ID] = *t
	m.setTransferChildren(t.ID, vehicles, riders)
	return nil
}

func (m *memRepo) UpdateTransfer(_ context.Context, t *domain.Transfer, vehicles []domain.TransferVehicle, riders []domain.TransferRider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.transfers[t.ID]
	if !ok || cur.RouteID != t.RouteID {
		return domain.ErrNotFound
	}
	m.transfers[t.ID] = *t
	m.setTransferChildren(t.ID, vehicles, riders)
	return nil
}

func (m *memRepo) setTransferChildren(transferID string, vehicles []domain.TransferVehicle, riders []domain.TransferRider) {
	m.vehicles[transferID] = nil
	for _, v := range vehicles {
		if v.ID == "" {
			v.ID = m.id()
		}
		v.TransferID = transferID
		m.vehicles[transferID] = append(m.vehicles[transferID], v)
	}
	m.riders[transferID] = nil
	for _, rd := range riders {
		if rd.ID == "" {
			rd.ID = m.id()
		}
		rd.TransferID = transferID
		dup := false
		for _, have := range m.riders[transferID] {
			if have.ParticipantID == rd.ParticipantID {
				dup = true
			}
		}
		if !dup {
			m.riders[transferID] = append(m.riders[transferID], rd)
		}
	}
}

func (m *memRepo) DeleteTransfer(_ context.Context, id, routeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transfers[id]
	if !ok || t.RouteID != routeID {
		return domain.ErrNotFound
	}
	delete(m.transfers, id)
	delete(m.vehicles, id)
	delete(m.riders, id)
	return nil
}

func (m *memRepo) AddTransferVehicle(_ context.Context, v *domain.TransferVehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID == "" {
		v.ID = m.id()
	}
	m.vehicles[v.TransferID] = append(m.vehicles[v.TransferID], *v)
	return nil
}

func (m *memRepo) RemoveTransferVehicle(_ context.Context, id, transferID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.vehicles[transferID] {
		if v.ID == id {
			m.vehicles[transferID] = append(m.vehicles[transferID][:i], m.vehicles[transferID][i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memRepo) AddTransferRider(_ context.Context, rd *domain.TransferRider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, have := range m.riders[rd.TransferID] {
		if have.ParticipantID == rd.ParticipantID {
			return domain.ErrConflict
		}
	}
	if rd.ID == "" {
		rd.ID = m.id()
	}
	m.riders[rd.TransferID] = append(m.riders[rd.TransferID], *rd)
	return nil
}

func (m *memRepo) RemoveTransferRider(_ context.Context, transferID, participantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, rd := range m.riders[transferID] {
		if rd.ParticipantID == participantID {
			m.riders[transferID] = append(m.riders[transferID][:i], m.riders[transferID][i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---- transactions ----

func (m *memRepo) ListTransactions(_ context.Context, routeID string) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Transaction{}, m.transactions[routeID]...), nil
}

func (m *memRepo) CreateTransaction(_ context.Context, t *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = m.id()
	}
	m.transactions[t.RouteID] = append(m.transactions[t.RouteID], *t)
	return nil
}

// ---- cache fake ----

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	sets  int
	dels  int
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.store, k)
	}
	c.dels++
	return nil
}

// ---- small helpers ----

func pstr(s string) *string     { return &s }
func pint(i int) *int           { return &i }
func pdate(s string) *domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}
