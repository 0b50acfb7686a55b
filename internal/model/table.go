package model

import "time"

// Table operational states.  Only an available table accepts new bookings;
// maintenance and occupied tables are skipped by the availability checker
// before any interval math runs.
const (
    TableAvailable   = "available"
    TableMaintenance = "maintenance"
    TableOccupied    = "occupied"
)

// Table describes one physical playing table in the facility.  Tables are
// static inventory: each carries a billiard type and an hourly rate that
// prices every reservation made against it.  This struct corresponds to a
// row in the `tables` table.
//
// Fields:
//  ID              – primary key identifier.
//  BilliardType    – game type the table is built for (e.g. "8-ball", "snooker").
//  HourlyRateCents – price per hour in cents.
//  Status          – operational status (available/maintenance/occupied).
//  CreatedAt       – timestamp when the table was registered.
//  UpdatedAt       – timestamp of last update.
type Table struct {
    ID              uint64    // tables.id
    BilliardType    string    // tables.billiard_type
    HourlyRateCents uint32    // tables.hourly_rate_cents
    Status          string    // tables.status
    CreatedAt       time.Time // tables.created_at
    UpdatedAt       time.Time // tables.updated_at
}
