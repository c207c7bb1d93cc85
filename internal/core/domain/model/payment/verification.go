package payment

// Verification is the gateway's verdict on a receipt.
//
// Authentic is true when the signature proves the receipt was issued for the intent.
// Replay is true when the gateway had already verified this exact receipt.
type Verification struct {
	Authentic bool
	Replay    bool
}
