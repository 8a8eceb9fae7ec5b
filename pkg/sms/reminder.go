package sms

import (
	"context"
	"encoding/json"
	"time"

	"FormUp/config"
	"FormUp/pkg/metrics"
)

// SendCurrencyReminder notifies a soldier that a vehicle currency is expiring
// or has lapsed.
func SendCurrencyReminder(ctx context.Context, phone, vehicleType string, daysRemaining int) error {
	param, err := json.Marshal(map[string]interface{}{
		"vehicle": vehicleType,
		"days":    daysRemaining,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	err = SendSingle(ctx, phone, config.Cfg.SMSSignName, config.Cfg.SMSTemplateCode, string(param))
	if err != nil {
		metrics.RecordReminderFailed(ctx, "currency", config.Cfg.SMSProvider)
		return err
	}

	metrics.RecordReminderSent(ctx, "currency", config.Cfg.SMSProvider, time.Since(start).Seconds())
	return nil
}

// SendBookingReminder notifies the holder of an upcoming facility slot.
func SendBookingReminder(ctx context.Context, phone string, startTime time.Time) error {
	param, err := json.Marshal(map[string]interface{}{
		"time": startTime.Format("02 Jan 15:04"),
	})
	if err != nil {
		return err
	}

	start := time.Now()
	err = SendSingle(ctx, phone, config.Cfg.SMSSignName, config.Cfg.SMSTemplateCode, string(param))
	if err != nil {
		metrics.RecordReminderFailed(ctx, "booking", config.Cfg.SMSProvider)
		return err
	}

	metrics.RecordReminderSent(ctx, "booking", config.Cfg.SMSProvider, time.Since(start).Seconds())
	return nil
}
