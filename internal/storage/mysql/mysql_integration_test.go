//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"tourops/internal/domain"
	mysqlrepo "tourops/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }

func pdate(t *testing.T, s string) *domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return &d
}

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func seedReference(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO locations (id, name) VALUES ('loc-a', 'Marrakech'), ('loc-b', 'Ouarzazate')`,
		`INSERT INTO clients (id, name) VALUES ('cli-1', 'Ana Cliente')`,
		`INSERT INTO guides (id, name) VALUES ('gde-1', 'Omar Guide')`,
		`INSERT INTO hotels (id, name) VALUES ('htl-1', 'Kasbah Lodge')`,
		`INSERT INTO third_parties (id, name) VALUES ('tp-1', 'Desert Rides')`,
		`INSERT INTO vehicles (id, vehicle_type, third_party_id) VALUES ('veh-1', '4x4', 'tp-1')`,
		`INSERT INTO vehicles (id, vehicle_type) VALUES ('veh-2', 'minibus')`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

// ---------- the test ----------
func TestRepo_MySQL_RouteGraph(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=tourops",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "tourops")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	seedReference(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Route and segment rows
	rt := domain.Route{
		Name:      "Atlas Crossing",
		StartDate: pdate(t, "2026-10-01"),
		Status:    domain.StatusDraft,
	}
	if err := repo.CreateRoute(ctx, &rt); err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}

	// a retried update with identical values changes no rows; the route
	// still exists, so this must not surface as not-found
	if err := repo.UpdateRoute(ctx, &rt); err != nil {
		t.Fatalf("UpdateRoute with unchanged values: %v", err)
	}
	if err := repo.UpdateRoute(ctx, &domain.Route{ID: "missing", Name: "x", Status: domain.StatusDraft}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("UpdateRoute on unknown id: err = %v, want ErrNotFound", err)
	}

	seg := domain.Segment{
		RouteID:        rt.ID,
		DayNumber:      1,
		SegmentDate:    pdate(t, "2026-10-01"),
		FromLocationID: pstr("loc-a"),
		ToLocationID:   pstr("loc-b"),
		SegmentOrder:   0,
	}
	if err := repo.CreateSegment(ctx, &seg); err != nil {
		t.Fatalf("CreateSegment: %v", err)
	}
	segs, err := repo.ListSegments(ctx, rt.ID)
	if err != nil {
		t.Fatalf("ListSegments: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	if segs[0].FromLocationName == nil || *segs[0].FromLocationName != "Marrakech" {
		t.Errorf("fromLocationName = %v, want Marrakech", segs[0].FromLocationName)
	}
	if segs[0].ToLocationName == nil || *segs[0].ToLocationName != "Ouarzazate" {
		t.Errorf("toLocationName = %v, want Ouarzazate", segs[0].ToLocationName)
	}

	// Stops
	stop := domain.Stop{SegmentID: seg.ID, LocationID: "loc-b", StopOrder: 1}
	if err := repo.CreateStop(ctx, &stop); err != nil {
		t.Fatalf("CreateStop: %v", err)
	}
	stops, err := repo.ListStops(ctx, seg.ID)
	if err != nil {
		t.Fatalf("ListStops: %v", err)
	}
	if len(stops) != 1 || stops[0].LocationName == nil || *stops[0].LocationName != "Ouarzazate" {
		t.Fatalf("unexpected stops: %+v", stops)
	}

	// Participants and the segment join table
	p := domain.Participant{RouteID: rt.ID, ClientID: pstr("cli-1")}
	if err := repo.CreateParticipant(ctx, &p); err != nil {
		t.Fatalf("CreateParticipant: %v", err)
	}
	list, err := repo.ListParticipants(ctx, rt.ID)
	if err != nil {
		t.Fatalf("ListParticipants: %v", err)
	}
	if len(list) != 1 || list[0].ClientName == nil || *list[0].ClientName != "Ana Cliente" {
		t.Fatalf("unexpected participants: %+v", list)
	}
	if err := repo.AddParticipantToSegment(ctx, seg.ID, p.ID); err != nil {
		t.Fatalf("AddParticipantToSegment: %v", err)
	}
	if err := repo.AddParticipantToSegment(ctx, seg.ID, p.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate join err = %v, want ErrConflict", err)
	}

	// Accommodation with a room and its occupant set
	acc := domain.Accommodation{SegmentID: seg.ID, HotelID: "htl-1", ClientType: "group"}
	if err := repo.CreateAccommodation(ctx, &acc); err != nil {
		t.Fatalf("CreateAccommodation: %v", err)
	}
	rm := domain.Room{AccommodationID: acc.ID, RoomType: "double", CostPerNight: 80}
	if err := repo.CreateRoom(ctx, &rm, []domain.RoomOccupant{{ParticipantID: p.ID, IsCouple: true}}); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	rm.RoomType = "twin"
	if err := repo.UpdateRoom(ctx, &rm, nil); err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}
	accs, err := repo.ListAccommodations(ctx, seg.ID)
	if err != nil {
		t.Fatalf("ListAccommodations: %v", err)
	}
	if len(accs) != 1 || accs[0].HotelName == nil || *accs[0].HotelName != "Kasbah Lodge" {
		t.Fatalf("unexpected accommodations: %+v", accs)
	}
	if len(accs[0].Rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(accs[0].Rooms))
	}
	if got := accs[0].Rooms[0]; got.RoomType != "twin" || len(got.Participants) != 0 {
		t.Fatalf("room after occupant-clearing update: %+v", got)
	}

	// Transfer: total cost is recomputed from the vehicle rows
	tr := domain.Transfer{
		RouteID:        rt.ID,
		TransferDate:   pdate(t, "2026-10-02"),
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
	}
	vehicles := []domain.TransferVehicle{
		{VehicleID: "veh-1", Quantity: 2, Cost: 100},
		{VehicleID: "veh-2", Quantity: 1, Cost: 50},
	}
	riders := []domain.TransferRider{{ParticipantID: p.ID}}
	if err := repo.CreateTransfer(ctx, &tr, vehicles, riders); err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}
	got, err := repo.GetTransfer(ctx, tr.ID, rt.ID)
	if err != nil {
		t.Fatalf("GetTransfer: %v", err)
	}
	if got.TotalCost != 250 {
		t.Errorf("totalCost = %v, want 250", got.TotalCost)
	}
	trs, err := repo.ListTransfers(ctx, rt.ID)
	if err != nil {
		t.Fatalf("ListTransfers: %v", err)
	}
	if len(trs) != 1 || len(trs[0].Vehicles) != 2 || len(trs[0].Participants) != 1 {
		t.Fatalf("unexpected transfer view: %+v", trs)
	}
	var labels []string
	for _, v := range trs[0].Vehicles {
		if v.VehicleLabel != nil {
			labels = append(labels, *v.VehicleLabel)
		}
	}
	sort.Strings(labels)
	if len(labels) != 2 || labels[0] != "4x4 - Desert Rides" || labels[1] != "minibus - Company" {
		t.Errorf("vehicle labels = %v", labels)
	}
	if trs[0].Participants[0].ParticipantName != "Ana Cliente" {
		t.Errorf("rider name = %q, want Ana Cliente", trs[0].Participants[0].ParticipantName)
	}
	if err := repo.AddTransferRider(ctx, &domain.TransferRider{TransferID: tr.ID, ParticipantID: p.ID}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate rider err = %v, want ErrConflict", err)
	}

	// Logistics: ad-hoc lines keep their item name, entity lines resolve
	lunch := domain.Logistics{
		RouteID:       rt.ID,
		LogisticsType: domain.LogisticsLunch,
		EntityType:    "third-party",
		ItemName:      pstr("Box lunches"),
		Quantity:      12,
		Cost:          8,
	}
	if err := repo.CreateLogistics(ctx, &lunch); err != nil {
		t.Fatalf("CreateLogistics lunch: %v", err)
	}
	guideLine := domain.Logistics{
		RouteID:       rt.ID,
		LogisticsType: "guide",
		EntityType:    "guide",
		EntityID:      pstr("gde-1"),
		Quantity:      1,
		Cost:          200,
	}
	if err := repo.CreateLogistics(ctx, &guideLine); err != nil {
		t.Fatalf("CreateLogistics guide: %v", err)
	}
	lines, err := repo.ListLogistics(ctx, rt.ID)
	if err != nil {
		t.Fatalf("ListLogistics: %v", err)
	}
	names := map[string]string{}
	for _, l := range lines {
		if l.EntityName != nil {
			names[l.LogisticsType] = *l.EntityName
		}
	}
	if names[domain.LogisticsLunch] != "Box lunches" {
		t.Errorf("lunch entityName = %q, want Box lunches", names[domain.LogisticsLunch])
	}
	if names["guide"] != "Omar Guide" {
		t.Errorf("guide entityName = %q, want Omar Guide", names["guide"])
	}

	// Transaction row
	txn := domain.Transaction{
		RouteID:         rt.ID,
		TransactionDate: domain.NewDate(2026, 10, 1),
		Amount:          1500,
		Currency:        "USD",
		Type:            "deposit",
	}
	if err := repo.CreateTransaction(ctx, &txn); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	txns, err := repo.ListTransactions(ctx, rt.ID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txns) != 1 || txns[0].Amount != 1500 {
		t.Fatalf("unexpected transactions: %+v", txns)
	}

	// Deleting the route takes the whole graph down via FK cascades.
	if err := repo.DeleteRoute(ctx, rt.ID); err != nil {
		t.Fatalf("DeleteRoute: %v", err)
	}
	if _, err := repo.GetSegment(ctx, seg.ID, rt.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("segment survived route delete: %v", err)
	}
	if _, err := repo.GetTransfer(ctx, tr.ID, rt.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("transfer survived route delete: %v", err)
	}
}
