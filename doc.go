/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verity enables Go developers to exchange DIDComm messages with a Verity cloud agent service.
//
// Packages for end developer usage
//
// pkg/didcomm/envelope: Packs a plaintext message into the two-layer routed envelope expected by the
// service, and unpacks envelopes received from it.
//
// pkg/didcomm/messagetype: Builds and parses message type identifiers.
//
// pkg/didcomm/protocol/...: Builders for the protocol messages understood by the service.
//
// pkg/client/messaging: Sends packed messages to the service endpoint.
//
// pkg/didcomm/dispatcher: Routes unpacked inbound messages to handlers by protocol family.
//
// Basic workflow
//
//      1) Load a VerityContext with pkg/config.
//      2) Create a key store and import the SDK keys into it.
//      3) Create an envelope codec over the legacy packer.
//      4) Build protocol messages and send them with a messaging client.
//      5) Register inbound handlers on a dispatcher and expose its endpoint.
package verity
