package cache

import (
	"time"
)

// MarketOpenHour はBorsa Istanbulの取引開始時刻（現地時間）です。
const MarketOpenHour = 10

// istanbul はtzdataが無い環境でも動くよう固定オフセットにフォールバックします。
func istanbul() *time.Location {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		return time.FixedZone("TRT", 3*60*60)
	}
	return loc
}

// TimeUntilNext は now から次の hour 時（loc の現地時間）までの期間を返します。
func TimeUntilNext(now time.Time, hour int, loc *time.Location) time.Duration {
	now = now.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)

	// 今日の指定時刻が既に過ぎている場合は翌日を使用
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// TimeUntilNextOpen は次の取引開始（10:00 Europe/Istanbul）までの期間を返します。
func TimeUntilNextOpen() time.Duration {
	return TimeUntilNext(time.Now(), MarketOpenHour, istanbul())
}
