package frame

type iFrameImpl struct {
	frameHeader IFrameHeader
	frameBody   IFrameBody
}

func NewOf(header IFrameHeader, body IFrameBody) IFrame {
	return &iFrameImpl{frameHeader: header, frameBody: body}
}

func (iFrame iFrameImpl) Header() IFrameHeader {
	return iFrame.frameHeader
}

func (iFrame iFrameImpl) Body() IFrameBody {
	return iFrame.frameBody
}

func (iFrame iFrameImpl) Copy() IFrame {
	return NewOf(iFrame.frameHeader.Copy(), iFrame.frameBody.Copy())
}

func (iFrame *iFrameImpl) CopyFrom(frame IFrame) {
	iFrame.frameHeader = frame.Header().Copy()
	iFrame.frameBody = frame.Body().Copy()
}
