package helper

import (
	"fmt"
	"log"
	"os"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gopkg.in/gomail.v2"
)

var reportScheduler gocron.Scheduler

// StartDailyReportScheduler mails the day's sales summary to REPORT_EMAIL
// shortly before closing. The job is skipped when SMTP is not configured.
func StartDailyReportScheduler() {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		log.Printf("failed to init report scheduler: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(23, 55, 0))),
		gocron.NewTask(SendDailySalesReport),
	)
	if err != nil {
		log.Printf("failed to schedule daily report: %v", err)
		return
	}

	s.Start()
	reportScheduler = s
	log.Println("daily sales report scheduler started (23:55)")
}

func StopDailyReportScheduler() {
	if reportScheduler != nil {
		reportScheduler.Shutdown()
	}
}

func SendDailySalesReport() {
	to := os.Getenv("REPORT_EMAIL")
	host := os.Getenv("SMTP_HOST")
	if to == "" || host == "" {
		return
	}

	db := database.DB
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var sales float64
	var orders int64
	db.Model(&model.Order{}).
		Where("status = ? AND created_at >= ?", constants.ORDER_PAID, dayStart).
		Count(&orders)
	db.Raw(`
        SELECT COALESCE(SUM(total), 0)
        FROM orders
        WHERE status = ? AND created_at >= ?
    `, constants.ORDER_PAID, dayStart).Scan(&sales)

	var settings model.Settings
	db.First(&settings)
	name := settings.RestaurantName
	if name == "" {
		name = "Restaurant"
	}

	body := fmt.Sprintf(
		"<h2>%s — sales for %s</h2><p>Paid orders: %d</p><p>Total sales: %.2f</p>",
		name, now.Format("02/01/2006"), orders, sales,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", name, os.Getenv("SMTP_USERNAME")))
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Daily sales report %s", now.Format("02/01/2006")))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, 587, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		log.Printf("failed to send daily report to %s: %v", to, err)
	}
}
