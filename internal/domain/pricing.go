package domain

import "github.com/shopspring/decimal"

// PricedSlot слот с рассчитанной стоимостью
type PricedSlot struct {
	Interval    Interval
	GrossPrice  decimal.Decimal // hourlyPrice * часы
	ServiceFee  decimal.Decimal // сбор, отнесённый на этот слот
	TotalPrice  decimal.Decimal
	StartsBlock bool
}

// PriceSlots считает стоимость слотов, отсортированных по началу.
// Сбор берётся один раз на непрерывный блок и относится на его первый слот:
// слот начинает новый блок, если его начало не совпадает с окончанием предыдущего.
func PriceSlots(sorted []Interval, hourlyPrice, serviceFee decimal.Decimal) []PricedSlot {
	result := make([]PricedSlot, len(sorted))
	for i, interval := range sorted {
		startsBlock := i == 0 || !sorted[i-1].Adjacent(interval)

		gross := hourlyPrice.Mul(interval.Hours()).Round(MoneyScale)
		fee := decimal.Zero
		if startsBlock {
			fee = serviceFee
		}

		result[i] = PricedSlot{
			Interval:    interval,
			GrossPrice:  gross,
			ServiceFee:  fee,
			TotalPrice:  gross.Add(fee),
			StartsBlock: startsBlock,
		}
	}
	return result
}

// BlockedSlots слоты блокировки: без цены и без сбора
func BlockedSlots(sorted []Interval) []PricedSlot {
	result := make([]PricedSlot, len(sorted))
	for i, interval := range sorted {
		result[i] = PricedSlot{
			Interval:    interval,
			GrossPrice:  decimal.Zero,
			ServiceFee:  decimal.Zero,
			TotalPrice:  decimal.Zero,
			StartsBlock: i == 0 || !sorted[i-1].Adjacent(interval),
		}
	}
	return result
}
