package framing

import (
	"fmt"

	"github.com/alpinefleet/tachoscan/pkg/result"
	"github.com/alpinefleet/tachoscan/pkg/signature"
)

const maxContainerDepth = 16

// DetectGeneration inspects the first two bytes of a file to determine
// which tachograph generation produced it (§4.1). This is a pure function
// of those two bytes, as required by the generation-detection law in §8.
func DetectGeneration(data []byte) result.Generation {
	if len(data) < 2 {
		return result.GenerationG1
	}
	switch {
	case data[0] == 0x76 && data[1] == 0x21:
		return result.GenerationG2
	case data[0] == 0x76 && data[1] == 0x31:
		return result.GenerationG2_2
	default:
		return result.GenerationG1
	}
}

// Decode is the single public entry point: it detects the generation,
// descends the framing recursively, dispatches every non-container record
// to its registered decoder, and assembles the generation-neutral result.
//
// A single malformed record never aborts the whole decode (§7 recoverable
// errors); only a broken top-level framing pass — the very first record
// cannot be bracketed at all — returns a *result.MalformedFile.
func Decode(data []byte, cfg Config) (res *result.TachographFile, err error) {
	gen := DetectGeneration(data)
	res = &result.TachographFile{Generation: gen}
	ctx := &DecodeContext{Result: res, Config: cfg, Generation: gen}

	defer func() {
		if r := recover(); r != nil {
			res.AddWarning("decode_panic_recovered", fmt.Sprintf("recovered from panic: %v", r), "")
		}
	}()

	var events []TagEvent
	switch gen {
	case result.GenerationG1:
		events = decodeSTAPLevel(ctx, data, 0, 0, "")
	default:
		events = decodeBERTLVLevel(ctx, data, 0, 0, "")
	}

	if len(events) == 0 && len(data) > 4 {
		return res, &result.MalformedFile{Offset: 0, Reason: "top-level framing could not bracket a single record"}
	}

	coveredEnd := coverage(events)
	if coveredEnd < len(data) {
		res.AddRawUnparsed(0, coveredEnd, len(data)-coveredEnd, "trailing bytes not covered by any record", data[coveredEnd:])
	}

	return res, nil
}

func coverage(events []TagEvent) int {
	end := 0
	for _, e := range events {
		if e.Offset+e.Length > end {
			end = e.Offset + e.Length
		}
	}
	return end
}

// decodeSTAPLevel walks one container level using G1's fixed 5-byte STAP
// framing: 2-byte tag + 1-byte record type + 2-byte length. It recurses
// into container tags and dispatches leaf tags to their registered decoder.
// It returns the TagEvents seen at this level so the caller can run
// signature pairing (§4.5) and covering-property bookkeeping (§8).
func decodeSTAPLevel(ctx *DecodeContext, data []byte, baseOffset, depth int, parentPath string) []TagEvent {
	if depth > maxContainerDepth {
		return nil
	}
	var events []TagEvent
	pos := 0
	for pos < len(data) {
		tag, recType, length, ok := readSTAPHeader(data, pos)
		headerLen := 5
		isSignature := false
		if ok {
			isSignature = recType == 0x01
		}
		if !ok || pos+headerLen+length > len(data) {
			fTag, fLength, fHeaderLen, fOK := fallbackFrame(data, pos, len(data))
			if !fOK {
				remaining := len(data) - pos
				ctx.Result.AddRawUnparsed(uint32(tag), baseOffset+pos, remaining,
					"malformed STAP header or length exceeds container", data[pos:])
				break
			}
			tag, length, headerLen = fTag, fLength, fHeaderLen
		}
		payload := data[pos+headerLen : pos+headerLen+length]
		isContainer := isContainerTag(ctx.Generation, uint32(tag))
		event := dispatch(ctx, ctx.Generation, uint32(tag), payload, baseOffset+pos, headerLen, length, depth, parentPath, isContainer, decodeSTAPLevel)
		event.IsSignature = isSignature
		if isSignature {
			event.DataTag = uint32(tag)
		}
		events = append(events, event)
		pos += headerLen + length
	}
	pairAndRecord(ctx, events)
	return events
}

// decodeBERTLVLevel walks one container level of G2/G2.2 BER-TLV framing:
// 2-byte tag + BER short/long-form length. 0x7621/0x7631 containers with a
// leading 0x00 byte have a 2-byte padding word skipped before recursion
// (§4.1).
func decodeBERTLVLevel(ctx *DecodeContext, data []byte, baseOffset, depth int, parentPath string) []TagEvent {
	if depth > maxContainerDepth {
		return nil
	}
	var events []TagEvent
	pos := 0
	for pos < len(data) {
		tag, ok := readTag16(data, pos)
		var length, lenConsumed int
		if ok {
			length, lenConsumed, ok = readBERLength(data, pos+2)
		}
		headerLen := 2 + lenConsumed
		if !ok || pos+headerLen+length > len(data) {
			fTag, fLength, fHeaderLen, fOK := fallbackFrame(data, pos, len(data))
			if !fOK {
				remaining := len(data) - pos
				ctx.Result.AddRawUnparsed(uint32(tag), baseOffset+pos, remaining,
					"malformed BER-TLV header or length exceeds container", data[pos:])
				break
			}
			tag, length, headerLen = uint16(fTag), fLength, fHeaderLen
		}
		payload := data[pos+headerLen : pos+headerLen+length]
		isContainer := isContainerTag(ctx.Generation, uint32(tag))
		innerStart := 0
		if isContainer && (tag == 0x7621 || tag == 0x7631) && len(payload) >= 2 && payload[0] == 0x00 {
			innerStart = 2
		}
		event := dispatch(ctx, ctx.Generation, uint32(tag), payload[innerStart:], baseOffset+pos, headerLen+innerStart, length-innerStart, depth, parentPath, isContainer, decodeBERTLVLevel)
		event.IsSignature = isBERSignatureTag(ctx.Generation, uint32(tag))
		events = append(events, event)
		pos += headerLen + length
	}
	pairAndRecord(ctx, events)
	return events
}

// readSTAPHeader reads the fixed 5-byte G1 header at data[pos].
func readSTAPHeader(data []byte, pos int) (tag uint16, recType byte, length int, ok bool) {
	if pos+5 > len(data) {
		return 0, 0, 0, false
	}
	tag, _ = readTag16(data, pos)
	recType = data[pos+2]
	lenVal, _ := readTag16(data, pos+3)
	return tag, recType, int(lenVal), true
}

// fallbackFrame implements §4.1's fallback heuristic: try, in order,
// BER-TLV multi-byte length, 2-byte-tag+2-byte-length, BER-TLV short-form.
// The first that yields a length fitting within the remaining bytes wins.
func fallbackFrame(data []byte, pos, end int) (tag uint16, length, headerLen int, ok bool) {
	remaining := end - pos
	if t, ok16 := readTag16(data, pos); ok16 {
		if l, c, okLen := readBERLongFormLength(data, pos+2); okLen && 2+c+l <= remaining {
			return t, l, 2 + c, true
		}
	}
	if pos+4 <= end {
		if t, ok16 := readTag16(data, pos); ok16 {
			if l, ok32 := readTag16(data, pos+2); ok32 && 4+int(l) <= remaining {
				return t, int(l), 4, true
			}
		}
	}
	if t, ok16 := readTag16(data, pos); ok16 {
		if l, c, okLen := readBERShortFormLength(data, pos+2); okLen && 2+c+l <= remaining {
			return t, l, 2 + c, true
		}
	}
	return 0, 0, 0, false
}

type levelDecoder func(ctx *DecodeContext, data []byte, baseOffset, depth int, parentPath string) []TagEvent

// dispatch hands a non-container payload to its registered decoder, or
// recurses a container payload through recurse. Recoverable decode errors
// (§7) become RawUnparsed entries rather than aborting the level.
func dispatch(ctx *DecodeContext, gen result.Generation, tag uint32, payload []byte, offset, headerLen, length, depth int, parentPath string, isContainer bool, recurse levelDecoder) TagEvent {
	entry, known := lookup(gen, tag)
	name := fmt.Sprintf("0x%04x", tag)
	if known {
		name = entry.Name
		isContainer = isContainer || entry.IsContainer
	}
	childPath := name
	if parentPath != "" {
		childPath = parentPath + ">" + name
	}

	if isContainer {
		recurse(ctx, payload, offset+headerLen, depth+1, childPath)
		return TagEvent{Tag: tag, Offset: offset, Length: headerLen + length}
	}

	if !known {
		ctx.Result.AddRawUnparsed(tag, offset, length, "unknown tag for this generation", payload)
		return TagEvent{Tag: tag, Offset: offset, Length: headerLen + length, Payload: payload}
	}

	if err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in decoder for %s: %v", name, r)
			}
		}()
		return entry.Decode(ctx, tag, payload)
	}(); err != nil {
		ctx.Result.AddRawUnparsed(tag, offset, length, err.Error(), payload)
	}

	return TagEvent{Tag: tag, Offset: offset, Length: headerLen + length, Payload: payload}
}

// pairAndRecord runs signature pairing (§4.5) over the TagEvents observed
// at one container level and appends the resulting SignatureBlock entries.
func pairAndRecord(ctx *DecodeContext, events []TagEvent) {
	pairs := signature.PairEvents(toSigEvents(events))
	for _, p := range pairs {
		ctx.Result.SignatureBlocks = append(ctx.Result.SignatureBlocks, result.SignatureBlock{
			Tag:          p.SignatureTag,
			DataTag:      p.DataTag,
			SignatureHex: p.SignatureHex,
			Orphan:       p.Orphan,
		})
	}
}

func toSigEvents(events []TagEvent) []signature.TagEvent {
	out := make([]signature.TagEvent, 0, len(events))
	for _, e := range events {
		out = append(out, signature.TagEvent{Tag: e.Tag, Payload: e.Payload, IsSignature: e.IsSignature, DataTag: e.DataTag})
	}
	return out
}
