package app

import (
	"fmt"
	"time"
)

const notificationTimeLayout = "02-01-2006 15:04:05"

func formatNotification(at time.Time, phone, message string) string {
	return fmt.Sprintf("В %s на телефон %s будет отправлено сообщение: %s", at.Format(notificationTimeLayout), phone, message)
}
