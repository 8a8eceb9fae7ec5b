package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics holds the domain-level counters.
type OTelMetrics struct {
	RemindersSentTotal   metric.Int64Counter
	RemindersFailedTotal metric.Int64Counter
	ReminderSendDuration metric.Float64Histogram

	DrivesRecordedTotal    metric.Int64Counter
	BookingsCreatedTotal   metric.Int64Counter
	BookingsCancelledTotal metric.Int64Counter
	AttemptsRecordedTotal  metric.Int64Counter
	SessionsConfirmedTotal metric.Int64Counter
	OCRRequestsTotal       metric.Int64Counter
}

var (
	metrics *OTelMetrics
	meter   = otel.Meter("formup")
)

func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.RemindersSentTotal, err = meter.Int64Counter(
		"reminders_sent_total",
		metric.WithDescription("Total number of reminder SMS sent"),
		metric.WithUnit("{sms}"),
	)
	if err != nil {
		return err
	}

	metrics.RemindersFailedTotal, err = meter.Int64Counter(
		"reminders_failed_total",
		metric.WithDescription("Total number of reminder SMS failures"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	metrics.ReminderSendDuration, err = meter.Float64Histogram(
		"reminder_send_duration_seconds",
		metric.WithDescription("Time spent sending reminder SMS"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.DrivesRecordedTotal, err = meter.Int64Counter(
		"drives_recorded_total",
		metric.WithDescription("Total number of currency drives recorded"),
		metric.WithUnit("{drive}"),
	)
	if err != nil {
		return err
	}

	metrics.BookingsCreatedTotal, err = meter.Int64Counter(
		"bookings_created_total",
		metric.WithDescription("Total number of facility bookings created"),
		metric.WithUnit("{booking}"),
	)
	if err != nil {
		return err
	}

	metrics.BookingsCancelledTotal, err = meter.Int64Counter(
		"bookings_cancelled_total",
		metric.WithDescription("Total number of facility bookings cancelled"),
		metric.WithUnit("{booking}"),
	)
	if err != nil {
		return err
	}

	metrics.AttemptsRecordedTotal, err = meter.Int64Counter(
		"ippt_attempts_recorded_total",
		metric.WithDescription("Total number of IPPT attempts recorded"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return err
	}

	metrics.SessionsConfirmedTotal, err = meter.Int64Counter(
		"ippt_sessions_confirmed_total",
		metric.WithDescription("Total number of IPPT upload sessions confirmed"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return err
	}

	metrics.OCRRequestsTotal, err = meter.Int64Counter(
		"ocr_requests_total",
		metric.WithDescription("Total number of OCR extraction requests"),
		metric.WithUnit("{request}"),
	)
	return err
}

// Recording helpers are nil-safe so callers work before InitMetrics.

func RecordReminderSent(ctx context.Context, kind, provider string, duration float64) {
	if metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("reminder.kind", kind),
		attribute.String("sms.provider", provider),
	)
	metrics.RemindersSentTotal.Add(ctx, 1, attrs)
	metrics.ReminderSendDuration.Record(ctx, duration, attrs)
}

func RecordReminderFailed(ctx context.Context, kind, provider string) {
	if metrics == nil {
		return
	}
	metrics.RemindersFailedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reminder.kind", kind),
		attribute.String("sms.provider", provider),
	))
}

func RecordDriveRecorded(ctx context.Context, source string) {
	if metrics == nil {
		return
	}
	metrics.DrivesRecordedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("drive.source", source), // manual | scan
	))
}

func RecordBookingCreated(ctx context.Context) {
	if metrics == nil {
		return
	}
	metrics.BookingsCreatedTotal.Add(ctx, 1)
}

func RecordBookingCancelled(ctx context.Context, refunded bool) {
	if metrics == nil {
		return
	}
	metrics.BookingsCancelledTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("booking.refunded", refunded),
	))
}

func RecordAttemptRecorded(ctx context.Context, source string) {
	if metrics == nil {
		return
	}
	metrics.AttemptsRecordedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("attempt.source", source), // manual | session
	))
}

func RecordSessionConfirmed(ctx context.Context, rows int) {
	if metrics == nil {
		return
	}
	metrics.SessionsConfirmedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("session.rows", rows),
	))
}

func RecordOCRRequest(ctx context.Context, provider, status string) {
	if metrics == nil {
		return
	}
	metrics.OCRRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ocr.provider", provider),
		attribute.String("ocr.status", status),
	))
}
