package domain

// AccountKind discriminates the two counterparty classes a khata tracks.
type AccountKind string

const (
	// AccountKindBuyer is a customer who owes the business for goods sold.
	AccountKindBuyer AccountKind = "buyer"
	// AccountKindSeller is a supplier the business owes for goods bought.
	AccountKindSeller AccountKind = "seller"
)

// Valid reports whether the kind is one of the two known account kinds.
func (k AccountKind) Valid() bool {
	return k == AccountKindBuyer || k == AccountKindSeller
}

// TransactionKind discriminates the two goods-movement directions.
type TransactionKind string

const (
	// TransactionKindSell records goods sold to a buyer.
	TransactionKindSell TransactionKind = "sell"
	// TransactionKindBuy records goods bought from a seller.
	TransactionKindBuy TransactionKind = "buy"
)

// Valid reports whether the kind is one of the two known transaction kinds.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindSell || k == TransactionKindBuy
}

// AccountKind returns the account kind a transaction of this kind is posted against.
func (k TransactionKind) AccountKind() AccountKind {
	if k == TransactionKindBuy {
		return AccountKindSeller
	}

	return AccountKindBuyer
}

// PaymentKind discriminates the two money-movement directions.
type PaymentKind string

const (
	// PaymentKindReceive records money received from a buyer.
	PaymentKindReceive PaymentKind = "receive"
	// PaymentKindPay records money paid out to a seller.
	PaymentKindPay PaymentKind = "pay"
)

// Valid reports whether the kind is one of the two known payment kinds.
func (k PaymentKind) Valid() bool {
	return k == PaymentKindReceive || k == PaymentKindPay
}

// AccountKind returns the account kind a payment of this kind is posted against.
func (k PaymentKind) AccountKind() AccountKind {
	if k == PaymentKindPay {
		return AccountKindSeller
	}

	return AccountKindBuyer
}
