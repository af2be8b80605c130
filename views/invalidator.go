package views

import (
	"context"
	"fmt"

	"salonbook/cache"

	"go.uber.org/zap"
)

const purgeAttempts = 3

// Invalidator fans a record mutation out to every cached view that
// could render the mutated record. The purge sets are enumerated
// explicitly per mutation type; a view not listed here will serve
// stale data until its expiry lands.
type Invalidator struct {
	Cache  cache.ViewCache
	Logger *zap.Logger
}

func NewInvalidator(c cache.ViewCache, logger *zap.Logger) *Invalidator {
	return &Invalidator{Cache: c, Logger: logger}
}

// AppointmentChanged purges every view touched by an appointment
// create, accept, cancel, modify or delete.
func (inv *Invalidator) AppointmentChanged(ctx context.Context, appointmentID, consumerID, providerID string) error {
	keys := make([]string, 0, 16)
	for _, role := range AdminRoles {
		for _, status := range AppointmentStatusFilters {
			keys = append(keys, ManageAppointmentsKey(role, status))
		}
	}
	keys = append(keys,
		MyAppointmentsKey(consumerID),
		MyAppointmentsKey(providerID),
		SingleAppointmentKey(appointmentID),
		AllAppointmentsKey(),
		UserAppointmentsKey(consumerID),
		UserAppointmentsKey(providerID),
	)
	keys = append(keys, dashboardKeys()...)
	return inv.purgeAll(ctx, keys)
}

// ReportChanged purges every view touched by a report create, respond,
// flag, mark-seen or delete.
func (inv *Invalidator) ReportChanged(ctx context.Context, reportID, consumerID string) error {
	keys := make([]string, 0, 8)
	for _, status := range ReportStatusFilters {
		keys = append(keys, ManageReportsKey(status))
	}
	keys = append(keys,
		UserReportsKey(consumerID),
		SingleReportKey(reportID),
	)
	keys = append(keys, dashboardKeys()...)
	return inv.purgeAll(ctx, keys)
}

// UserChanged purges every view touched by a profile edit, warning,
// activation toggle or account removal.
func (inv *Invalidator) UserChanged(ctx context.Context, userID string) error {
	keys := make([]string, 0, 12)
	for _, filter := range UserFilters {
		keys = append(keys, ManageUsersKey(filter))
	}
	for _, rt := range ViewUserReturnTypes {
		keys = append(keys, ViewUserKey(userID, rt))
	}
	keys = append(keys,
		UserAppointmentsKey(userID),
		UserReportsKey(userID),
	)
	keys = append(keys, dashboardKeys()...)
	return inv.purgeAll(ctx, keys)
}

// dashboardKeys lists the admin landing views. The dashboard aggregates
// counts over appointments, reports and users, so every mutation type
// purges it.
func dashboardKeys() []string {
	keys := make([]string, 0, len(AdminRoles))
	for _, role := range AdminRoles {
		keys = append(keys, DashboardKey(role))
	}
	return keys
}

// purgeAll purges each key, retrying transient failures. Every key is
// attempted even when earlier keys fail; the last error is returned so
// callers can log a degraded invalidation without aborting the write
// that triggered it.
func (inv *Invalidator) purgeAll(ctx context.Context, keys []string) error {
	var lastErr error
	for _, key := range keys {
		if err := inv.purge(ctx, key); err != nil {
			inv.Logger.Warn("view purge failed",
				zap.String("key", key),
				zap.Error(err))
			lastErr = fmt.Errorf("purge %s: %w", key, err)
		}
	}
	return lastErr
}

func (inv *Invalidator) purge(ctx context.Context, key string) error {
	var err error
	for attempt := 1; attempt <= purgeAttempts; attempt++ {
		if err = inv.Cache.Purge(ctx, key); err == nil {
			return nil
		}
	}
	return err
}
