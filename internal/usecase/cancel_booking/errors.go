package cancel_booking

// EventBookingCancelled имя счетчика отмен
const EventBookingCancelled = "booking_cancelled"
