// BSD 2-Clause License
//
// Copyright (c) 2020, Andrea Giacomo Baldan
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
//
// * Redistributions of source code must retain the above copyright notice, this
//   list of conditions and the following disclaimer.
//
// * Redistributions in binary form must reproduce the above copyright notice,
//   this list of conditions and the following disclaimer in the documentation
//   and/or other materials provided with the distribution.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// Package queue carries submission Jobs from the coordinator's ingress path
// to its worker pool over an AMQP broker.
package queue

import (
	"github.com/streadway/amqp"
)

// Queue is the narrow interface the coordinator depends on, letting tests
// swap in an in-memory fake instead of dialing a broker.
type Queue interface {
	Produce(body []byte) error
	Consume(items chan<- []byte) error
}

// AmqpAdapter carries job payloads over a named queue on a streadway/amqp
// broker; the queue is declared durable only when built WithDurable(true).
type AmqpAdapter struct {
	url, queue string
	durable    bool
}

// Option configures an AmqpAdapter at construction time.
type Option func(*AmqpAdapter)

// WithDurable marks the underlying queue as durable, surviving broker
// restarts.
func WithDurable(durable bool) Option {
	return func(a *AmqpAdapter) { a.durable = durable }
}

// NewAmqpAdapter builds an adapter bound to queueName on the broker at url.
func NewAmqpAdapter(url, queueName string, opts ...Option) *AmqpAdapter {
	a := &AmqpAdapter{url: url, queue: queueName}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Produce dials the broker, declares the queue and publishes body to it.
// Each call opens and closes its own connection, matching the low-volume,
// one-job-per-submission traffic this queue carries.
func (a *AmqpAdapter) Produce(body []byte) error {
	conn, err := amqp.Dial(a.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(a.queue, a.durable, false, false, false, nil)
	if err != nil {
		return err
	}

	return ch.Publish("", q.Name, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Consume dials the broker and streams every delivery body onto items,
// blocking until the broker closes the delivery channel (a connection or
// channel failure); stopping the worker pool does not end it. Deliveries
// are auto-acked: the broker drops each message once it is handed over, so
// a job whose worker crashes mid-grade is not redelivered. A job that does
// arrive twice is skipped when its submission is already terminal.
func (a *AmqpAdapter) Consume(items chan<- []byte) error {
	conn, err := amqp.Dial(a.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(a.queue, a.durable, false, false, false, nil)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return err
	}

	for d := range msgs {
		items <- d.Body
	}
	return nil
}
