package feed

import (
	"errors"
	"fmt"

	"github.com/samsimpson1/stonks/core/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrMalformedFrame is returned by Decode when a frame is not a sale batch.
var ErrMalformedFrame = errors.New("malformed feed frame")

// Sale is a single market transaction carried by a feed frame.
type Sale struct {
	Timestamp    int64
	PricePerUnit int64
	Quantity     int64
	BuyerName    string
}

// SaleBatch groups the sales of one item on one world delivered in a single frame.
type SaleBatch struct {
	ItemID  int64
	WorldID int64
	Sales   []Sale
}

type subscribeMessage struct {
	Event   string `bson:"event"`
	Channel string `bson:"channel"`
}

// Numeric fields are decoded as interface values: the feed sends int32, int64 or
// integral doubles depending on magnitude.
type wireBatch struct {
	Item  any        `bson:"item"`
	World any        `bson:"world"`
	Sales []wireSale `bson:"sales"`
}

type wireSale struct {
	Timestamp    any    `bson:"timestamp"`
	PricePerUnit any    `bson:"pricePerUnit"`
	Quantity     any    `bson:"quantity"`
	BuyerName    string `bson:"buyerName"`
}

// SalesChannel returns the channel name carrying new sales for a world.
func SalesChannel(worldID int64) string {
	return fmt.Sprintf("sales/add{world=%d}", worldID)
}

// EncodeSubscribe builds the binary subscribe frame for a world's sales channel.
func EncodeSubscribe(worldID int64) ([]byte, error) {
	return bson.Marshal(subscribeMessage{
		Event:   "subscribe",
		Channel: SalesChannel(worldID),
	})
}

// Decode turns a binary feed frame into a SaleBatch.
// Sales keep the order in which they appear in the frame.
func Decode(frame []byte) (SaleBatch, error) {
	var wire wireBatch
	if err := bson.Unmarshal(frame, &wire); err != nil {
		return SaleBatch{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	itemID, ok := utils.ToInt64(wire.Item)
	if !ok {
		return SaleBatch{}, fmt.Errorf("%w: item is %v", ErrMalformedFrame, wire.Item)
	}
	worldID, ok := utils.ToInt64(wire.World)
	if !ok {
		return SaleBatch{}, fmt.Errorf("%w: world is %v", ErrMalformedFrame, wire.World)
	}

	batch := SaleBatch{
		ItemID:  itemID,
		WorldID: worldID,
		Sales:   make([]Sale, 0, len(wire.Sales)),
	}

	for i, ws := range wire.Sales {
		ts, ok := utils.ToInt64(ws.Timestamp)
		if !ok {
			return SaleBatch{}, fmt.Errorf("%w: sale %d timestamp is %v", ErrMalformedFrame, i, ws.Timestamp)
		}
		price, ok := utils.ToInt64(ws.PricePerUnit)
		if !ok {
			return SaleBatch{}, fmt.Errorf("%w: sale %d pricePerUnit is %v", ErrMalformedFrame, i, ws.PricePerUnit)
		}
		qty, ok := utils.ToInt64(ws.Quantity)
		if !ok {
			return SaleBatch{}, fmt.Errorf("%w: sale %d quantity is %v", ErrMalformedFrame, i, ws.Quantity)
		}
		batch.Sales = append(batch.Sales, Sale{
			Timestamp:    ts,
			PricePerUnit: price,
			Quantity:     qty,
			BuyerName:    ws.BuyerName,
		})
	}

	return batch, nil
}
