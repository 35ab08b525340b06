package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type BookingConfirmationData struct {
	OrderCode    string
	CustomerName string
	StoreName    string
	RoomName     string
	Date         string
	TimeWindow   string
	PlayerCount  int
	TotalAmount  float64
}

// SendBookingConfirmation mails the customer after a booking commits.
// Async so it never delays the response; a missing SMTP config disables
// it silently.
func SendBookingConfirmation(to string, data BookingConfirmationData) {
	host := os.Getenv("SMTP_HOST")
	if host == "" || to == "" {
		return
	}

	go func() {
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if port == 0 {
			port = 587
		}

		body := fmt.Sprintf(
			"Hi %s,\n\nYour booking %s is confirmed.\n\nStore: %s\nRoom: %s\nDate: %s\nTime: %s\nPlayers: %d\nTotal: %.2f\n\nSee you there!",
			data.CustomerName, data.OrderCode, data.StoreName, data.RoomName,
			data.Date, data.TimeWindow, data.PlayerCount, data.TotalAmount)

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Booking confirmed #"+data.OrderCode)
		m.SetBody("text/plain", body)

		d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("booking confirmation mail to %s failed: %v", to, err)
		}
	}()
}
