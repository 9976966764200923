// Copyright 2026 The Inkwell Authors
// SPDX-License-Identifier: Apache-2.0

// Command cbor-example demonstrates encoding and decoding a slice of
// records, then a tiny request/response pair dispatched through a union,
// mirroring a small client-server exchange.
package main

import (
	"fmt"
	"log"

	"github.com/inkwell-cbor/cbor"
)

type kind uint8

const (
	kindCat kind = iota
	kindDog
	kindHamster
	kindFish
)

func (k kind) String() string {
	switch k {
	case kindCat:
		return "cat"
	case kindDog:
		return "dog"
	case kindHamster:
		return "hamster"
	case kindFish:
		return "fish"
	default:
		return "alien"
	}
}

// pet opts into the automatic member protocol; its wire shape mirrors its
// Go field layout exactly.
type pet struct {
	cbor.Reflectable
	Name string
	Kind kind
}

type requestResult uint8

const (
	requestSuccess requestResult = iota
	requestError
)

type contact struct {
	cbor.Reflectable
	Name    string
	Phone   string
	Address *string
}

const (
	addContactID  = 0x01
	getContactsID = 0x02
)

type addContactRequest struct {
	cbor.Reflectable
	ID    int64
	Value contact
}

type addContactResponse struct {
	cbor.Reflectable
	RequestID int64
	Result    requestResult
	ContactID *int64
}

var requestUnion = cbor.NewUnion(
	cbor.UnionMember[addContactRequest](addContactID),
)

var responseUnion = cbor.NewUnion(
	cbor.UnionMember[addContactResponse](addContactID),
)

func main() {
	fmt.Println("CBOR codec example.")
	fmt.Println("Use https://cbor.me/ to inspect the hex below.")
	fmt.Println()

	pets := []pet{
		{Name: "Bailey", Kind: kindDog},
		{Name: "Whiskers", Kind: kindCat},
		{Name: "Sushi", Kind: kindFish},
		{Name: "Budweiser", Kind: kindHamster},
	}

	var encoded []byte
	sink := cbor.NewDynamicSink(&encoded, cbor.UnlimitedCapacity)
	encodePet := func(sink cbor.Sink, p pet) error { return cbor.EncodeRecord(sink, p) }
	if err := cbor.EncodeSlice(sink, pets, encodePet); err != nil {
		log.Fatalf("encoding pets: %v", err)
	}
	fmt.Printf("Encoded:\n%X\n\n", encoded)

	decoded, err := cbor.DecodeSlice(cbor.NewSource(encoded), func(source *cbor.Source) (pet, error) {
		var p pet
		err := cbor.DecodeRecord(source, &p)
		return p, err
	})
	if err != nil {
		log.Fatalf("decoding pets: %v", err)
	}
	fmt.Println("Decoded:")
	for _, p := range decoded {
		fmt.Printf("- Pet %s named %s\n", p.Kind, p.Name)
	}
	fmt.Println()

	// A client builds a request, a server decodes it by union type-id and
	// replies in kind.
	request := addContactRequest{
		ID:    7,
		Value: contact{Name: "Ada Lovelace", Phone: "555-0100"},
	}

	var requestBytes []byte
	requestSink := cbor.NewDynamicSink(&requestBytes, cbor.UnlimitedCapacity)
	if err := requestUnion.Encode(requestSink, request); err != nil {
		log.Fatalf("encoding request: %v", err)
	}

	response := handleMessage(requestBytes)

	var responseBytes []byte
	responseSink := cbor.NewDynamicSink(&responseBytes, cbor.UnlimitedCapacity)
	if err := responseUnion.Encode(responseSink, response); err != nil {
		log.Fatalf("encoding response: %v", err)
	}

	decodedResponse, err := responseUnion.Decode(cbor.NewSource(responseBytes))
	if err != nil {
		log.Fatalf("decoding response: %v", err)
	}
	ar := decodedResponse.(addContactResponse)
	fmt.Printf("Server replied to request %d with result=%d\n", ar.RequestID, ar.Result)
}

// handleMessage stands in for a server receiving requestBytes over the
// wire: decode by union type-id, dispatch, respond.
func handleMessage(requestBytes []byte) addContactResponse {
	decoded, err := requestUnion.Decode(cbor.NewSource(requestBytes))
	if err != nil {
		log.Fatalf("server: decoding request: %v", err)
	}

	req, ok := decoded.(addContactRequest)
	if !ok {
		log.Fatalf("server: unexpected request type %T", decoded)
	}

	contactID := int64(42)
	return addContactResponse{
		RequestID: req.ID,
		Result:    requestSuccess,
		ContactID: &contactID,
	}
}
