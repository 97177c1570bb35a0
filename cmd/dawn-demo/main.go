// Command dawn-demo runs a full handshake and a short message exchange
// end to end, logging each step. It replaces the teacher's
// cmd/gen_keys demo; its logging follows the teacher's client/main.go,
// which printed X3DH/Double Ratchet state with a package-level
// logrus.New() instance and printf-style Infof/Errorf calls; dawn-demo
// narrates the handshake the same way.
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/c0d3-rev0lut10n/dawn-stdlib/envelope"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/handle"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/handshake"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/keyschedule"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/message"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/primitive"
	"github.com/c0d3-rev0lut10n/dawn-stdlib/ratchet"
)

var logger = logrus.New()

func main() {
	p := primitive.Default()

	logger.Info("generating responder's handle")
	bobBundle, err := handle.Generate(p, "bob")
	fatalOnErr("generating bob's handle", err)
	published := handle.Encode(bobBundle.Public)
	logger.Infof("bob published a handle: %s", published)

	aliceSig, err := p.SigKeygen()
	fatalOnErr("generating alice's signing key", err)
	bobSig, err := p.SigKeygen()
	fatalOnErr("generating bob's signing key", err)

	logger.Info("alice generates an InitRequest against bob's handle")
	remote, err := handle.Decode([]byte(published))
	fatalOnErr("decoding bob's handle", err)
	initiatorState, frame, err := handshake.GenInitRequest(p, remote, *aliceSig, "alice", "hi bob", true)
	fatalOnErr("generating alice's InitRequest", err)

	wire := envelope.EncodeBootstrapFrame(frame)
	logger.Infof("alice sends the bootstrap frame: %d bytes", len(wire))

	logger.Info("bob parses the InitRequest")
	parsed, err := handshake.ParseInitRequest(p, *bobBundle, wire, primitive.KEMCtSize, primitive.SignatureSize)
	fatalOnErr("parsing alice's InitRequest", err)
	logger.Infof("bob recovered the InitRequest plaintext: name=%q comment=%q sig_verdict=%v", parsed.InitiatorName, parsed.InitiatorComment, parsed.SigVerdict)

	logger.Info("bob accepts and replies")
	acceptRecord, _, err := handshake.AcceptInitRequest(p, parsed, *bobSig, true)
	fatalOnErr("accepting alice's InitRequest", err)

	logger.Info("alice parses the InitAccept")
	verdict, err := handshake.ParseInitResponse(p, initiatorState, acceptRecord, true)
	fatalOnErr("parsing bob's InitAccept", err)
	logger.Infof("handshake established, sig_verdict=%v", verdict)

	secNum := keyschedule.SecurityNumber(p, parsed.Send.RemoteKEMPub.Bytes(), bobBundle.Public.KEMPub.Bytes())
	logger.Infof("out-of-band verification string: %s", secNum)

	logger.Info("alice sends a text message")
	nextID, err := p.NextID(initiatorState.ID)
	fatalOnErr("advancing the shared id counter", err)
	mdc, err := keyschedule.PredictableMDC(p, initiatorState.MDCSeed, nextID)
	fatalOnErr("deriving alice's message mdc", err)
	text := "hey bob, this channel is live"
	msg, err := message.BuildSendable(message.ContentText, &text, nil, mdc)
	fatalOnErr("building alice's message", err)
	plaintext, err := message.Encode(msg)
	fatalOnErr("encoding alice's message", err)
	record, err := ratchet.Encrypt(p, initiatorState.Send, initiatorState.PFSSalt, plaintext, &aliceSig.Priv)
	fatalOnErr("encrypting alice's message", err)

	logger.Info("bob receives and decrypts it")
	bobPlain, sigVerdict, err := ratchet.Decrypt(p, parsed.Recv, parsed.PFSSalt, record, parsed.RemoteSigPub)
	fatalOnErr("decrypting alice's message", err)
	receivedMsg, err := message.Decode(bobPlain)
	fatalOnErr("decoding alice's message", err)
	result, err := message.ParseReceived(receivedMsg)
	fatalOnErr("parsing alice's message", err)
	logger.Infof("bob read alice's message: %q sig_verdict=%v", *result.Text, sigVerdict)
}

func fatalOnErr(step string, err error) {
	if err != nil {
		logger.Fatalf("dawn-demo failed at %s: %v", step, err)
	}
}
