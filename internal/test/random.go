package test

import (
	"math/rand"
	"sync"
	"time"

	"github.com/polkiloo/courierdesk/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += int(randomIntn(maxLen - minLen + 1))
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

// RandomOrderDraft returns a draft with every required field filled with random text.
func RandomOrderDraft(distance float64, urgent bool) model.OrderDraft {
	return model.OrderDraft{
		FirstName:       RandomASCIIString(3, 12),
		LastName:        RandomASCIIString(3, 16),
		PhoneNumber:     "+7" + RandomDigits(10),
		PackageName:     RandomASCIIString(4, 20),
		PickupAddress:   RandomASCIIString(8, 40),
		DeliveryAddress: RandomASCIIString(8, 40),
		Distance:        distance,
		IsUrgent:        urgent,
	}
}

// RandomDigits returns n pseudo-random decimal digits.
func RandomDigits(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte('0' + randomIntn(10))
	}
	return string(buf)
}
