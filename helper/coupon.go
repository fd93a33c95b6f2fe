package helper

import (
	"log"
	"time"

	"trendkart/database"
	"trendkart/service"

	"github.com/go-co-op/gocron/v2"
)

var couponScheduler gocron.Scheduler

// SweepExpiredCoupons flips coupons whose end date has passed to inactive.
func SweepExpiredCoupons() {
	n, err := service.DeactivateExpiredCoupons(database.DB)
	if err != nil {
		log.Printf("coupon sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("deactivated %d expired coupons", n)
	}
}

func StartCouponScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("IST", 5*3600+1800)),
	)
	if err != nil {
		log.Fatal(err)
	}

	couponScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(SweepExpiredCoupons),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Coupon expiry scheduler started (00:05 IST)")
}

func StopCouponScheduler() {
	if couponScheduler != nil {
		_ = couponScheduler.Shutdown()
	}
}
